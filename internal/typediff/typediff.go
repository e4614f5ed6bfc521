// Package typediff implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package typediff

import (
	"io"

	"go.followtheprocess.codes/log"
)

// App represents the typediff program.
type App struct {
	stdin   io.Reader   // Input for interactive prompts and '-' paths
	stdout  io.Writer   // Normal program output is written here
	stderr  io.Writer   // Logs and errors are written here
	logger  *log.Logger // The logger for the application
	version string      // The program version
}

// New returns a new [App].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.Prefix("typediff"), log.WithLevel(level))

	return App{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		version: version,
	}
}
