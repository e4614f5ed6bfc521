package typediff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.followtheprocess.codes/typediff/internal/format"
	"go.followtheprocess.codes/typediff/internal/resolver"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default number of pairs resolved at once by batch.
//
//nolint:gochecknoglobals // runtime.NumCPU is not a constant
var DefaultConcurrency = runtime.NumCPU()

// BatchOptions are the options passed to the batch subcommand.
type BatchOptions struct {
	// Path is the file of expected and actual pairs, or "-" for stdin.
	Path string

	// Format is the output format e.g. text, json, yaml.
	Format string

	// InputFormat is the format of the file at Path. If empty it is inferred
	// from the file extension.
	InputFormat string

	// Concurrency is the maximum number of pairs resolved at once.
	Concurrency int

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the BatchOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (b BatchOptions) Validate() error {
	switch {
	case b.Path == "":
		return errors.New("path cannot be empty, use '-' to read from stdin")
	case !format.IsExporter(b.Format):
		return fmt.Errorf("invalid option for --format %q, allowed values are %v", b.Format, format.Exporters())
	case b.InputFormat != "" && !format.IsImporter(b.InputFormat):
		return fmt.Errorf("invalid option for --input-format %q, allowed values are %v", b.InputFormat, format.Importers())
	case b.InputFormat == "" && b.Path == stdinPath:
		return errors.New("--input-format is required when reading from stdin")
	case b.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", b.Concurrency)
	default:
		return nil
	}
}

// Batch implements the batch subcommand.
//
// Every pair read from the input is resolved concurrently and the results
// exported in input order. Pairs that fail to parse are not an error, they
// are exported as fallback results.
func (a App) Batch(ctx context.Context, options BatchOptions) error {
	logger := a.logger.Prefixed("batch").With(slog.String("path", options.Path))

	if err := options.Validate(); err != nil {
		return err
	}

	logger.Debug("Batch configuration", slog.String("version", a.version), slog.String("options", fmt.Sprintf("%+v", options)))

	inputFormat := options.InputFormat
	if inputFormat == "" {
		inputFormat = inferFormat(options.Path)
	}

	importer, err := format.ImporterFor(inputFormat)
	if err != nil {
		return fmt.Errorf("could not determine input format of %s: %w", options.Path, err)
	}

	exporter, err := format.ExporterFor(options.Format)
	if err != nil {
		return err
	}

	start := time.Now()

	r, err := a.open(options.Path)
	if err != nil {
		return err
	}
	defer r.Close()

	pairs, err := importer.Import(r)
	if err != nil {
		return fmt.Errorf("could not read pairs from %s: %w", options.Path, err)
	}

	logger.Debug("Read pairs", slog.Int("count", len(pairs)), slog.Duration("took", time.Since(start)))

	results, err := resolveAll(ctx, pairs, options.Concurrency)
	if err != nil {
		return err
	}

	fallbacks := 0

	for _, result := range results {
		if result.Fallback {
			fallbacks++
		}
	}

	logger.Debug(
		"Resolved pairs",
		slog.Int("count", len(results)),
		slog.Int("fallbacks", fallbacks),
		slog.Duration("took", time.Since(start)),
	)

	return exporter.Export(a.stdout, results)
}

// resolveAll resolves every pair with at most limit running at once, the results
// are in the same order as pairs.
func resolveAll(ctx context.Context, pairs []resolver.Pair, limit int) ([]resolver.Result, error) {
	results := make([]resolver.Result, len(pairs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i, pair := range pairs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = resolver.Difference(pair)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// inferFormat guesses the import format from the extension of path.
func inferFormat(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml":
		return format.YAML
	default:
		return strings.TrimPrefix(ext, ".")
	}
}
