// Package lint implements the line scanning lint engine, the individual checks and the
// [Runner] that governs how many diagnostics are collected.
//
// A source is scanned in a single pass, one physical line at a time. Every enabled check
// looks at the line (and whatever state has been carried over from earlier lines) and
// offers any finding to the shared [Runner]. Once the input is exhausted a final set of
// checks that need to know where the source ends is run through the same path.
package lint

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Reader buffer sizes.
const (
	// PeekSize is the number of leading bytes inspected when deciding whether
	// a source is binary.
	PeekSize = 8 * 1024

	// SmallBufferSize is the read buffer used for sources under [LargeFileThreshold].
	SmallBufferSize = 64 * 1024

	// LargeBufferSize is the read buffer used for sources of [LargeFileThreshold] or more.
	LargeBufferSize = 256 * 1024

	// LargeFileThreshold is the size in bytes at which a source gets the larger buffer.
	LargeFileThreshold = 1024 * 1024
)

var (
	// ErrBinary is returned by [Lint] when a source looks like binary content and
	// was skipped. It is not a failure.
	ErrBinary = errors.New("binary content detected")

	// ErrAborted is returned by [Lint] when the error limit has been reached, the caller
	// must not scan any further sources.
	ErrAborted = errors.New("error limit reached")
)

// BufferSize returns the read buffer size to use for a source of the given size in bytes.
func BufferSize(size int64) int {
	if size < LargeFileThreshold {
		return SmallBufferSize
	}

	return LargeBufferSize
}

// Lint scans a single source, identified by name, offering every diagnostic it finds to runner.
//
// Unless options.Text is set, a source containing a NUL byte in its first [PeekSize] bytes
// is skipped and [ErrBinary] returned. If the runner aborts because the error limit has
// been reached, [ErrAborted] is returned. Any other error is a failure to read this source,
// diagnostics already recorded from it are kept.
func Lint(name string, r io.Reader, runner *Runner, options Options) error {
	if runner.Aborted() {
		return ErrAborted
	}

	// Returns r itself if it's already a big enough *bufio.Reader
	reader := bufio.NewReaderSize(r, PeekSize)

	if !options.Text {
		peeked, err := reader.Peek(PeekSize)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("could not read %s: %w", name, err)
		}

		if bytes.IndexByte(peeked, 0) != -1 {
			return ErrBinary
		}
	}

	s := newScanner(name, runner, options)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if !utf8.ValidString(line) {
				return fmt.Errorf("could not read %s: line %d is not valid UTF-8", name, s.lnum+1)
			}

			if !s.scan(line) {
				return ErrAborted
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("could not read %s: %w", name, err)
		}
	}

	if !s.finish() {
		return ErrAborted
	}

	return nil
}
