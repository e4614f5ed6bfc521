package typediff

import (
	"fmt"
	"io"
	"os"
)

// stdinPath is the path argument meaning "read from stdin".
const stdinPath = "-"

// open opens path for reading, or returns a.stdin if path is "-".
func (a App) open(path string) (io.ReadCloser, error) {
	if path == stdinPath {
		return io.NopCloser(a.stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}

	return file, nil
}
