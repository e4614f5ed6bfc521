package typediff

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/typediff/internal/typename"
	"go.followtheprocess.codes/typediff/internal/typename/parser"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path to a file of type names, one per line, or "-" for stdin.
	Path string

	// Concurrency is the maximum number of type names parsed at once.
	Concurrency int

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the CheckOptions is valid, returning an error
// if it's not.
func (c CheckOptions) Validate() error {
	switch {
	case c.Path == "":
		return errors.New("path cannot be empty, use '-' to read from stdin")
	case c.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	default:
		return nil
	}
}

// entry is a single type name to check and where it came from.
type entry struct {
	text   string
	number int
}

// Check implements the check subcommand.
//
// Type names are parsed concurrently, at most options.Concurrency at once. All syntax errors are reported through
// handler (serialised, so handler need not be safe for concurrent use) before
// Check returns.
func (a App) Check(ctx context.Context, handler typename.ErrorHandler, options CheckOptions) error {
	logger := a.logger.Prefixed("check").With(slog.String("path", options.Path))

	if err := options.Validate(); err != nil {
		return err
	}

	logger.Debug("Checking type names")

	lines, err := a.readLines(options.Path)
	if err != nil {
		return err
	}

	logger.Debug("Read type names", slog.Int("number", len(lines)))

	var mu sync.Mutex

	synced := func(pos typename.Position, message string) {
		if handler == nil {
			return
		}

		mu.Lock()
		defer mu.Unlock()
		handler(pos, message)
	}

	errs := make([]error, len(lines))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(options.Concurrency)

	for i, item := range lines {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			name := fmt.Sprintf("%s:%d", options.Path, item.number)

			// We don't actually care about the result, just that it parses
			_, errs[i] = parser.Parse(name, item.text, synced)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	invalid := 0

	for _, err := range errs {
		if err != nil {
			invalid++
		}
	}

	if invalid != 0 {
		logger.Debug("Found invalid type names", slog.Int("invalid", invalid))
		return fmt.Errorf("%d of %d type names in %s are invalid", invalid, len(lines), options.Path)
	}

	msg.Fsuccess(a.stdout, "%s is valid", options.Path)

	return nil
}

// readLines reads the type names from path, skipping blank lines and '#' comments.
func (a App) readLines(path string) ([]entry, error) {
	r, err := a.open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var lines []entry

	scanner := bufio.NewScanner(r)

	number := 0
	for scanner.Scan() {
		number++

		// Parse the untrimmed text so diagnostic columns match the file
		text := scanner.Text()

		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		lines = append(lines, entry{text: text, number: number})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	return lines, nil
}
