// Package genlint implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package genlint

import (
	"io"

	"go.followtheprocess.codes/log"
)

// Stdin is the name given to standard input in diagnostics and logs.
const Stdin = "<stdin>"

// App represents the genlint program.
type App struct {
	stdin   io.Reader   // Source text when linting standard input
	stdout  io.Writer   // Rendered diagnostics are written here
	stderr  io.Writer   // Logs, advisories, the summary and errors are written here
	logger  *log.Logger // The logger for the application
	version string      // The version of genlint
}

// New returns a new [App].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.Prefix("genlint"), log.WithLevel(level))

	return App{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		version: version,
	}
}
