package lint

import (
	"strings"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/marker"
	"go.followtheprocess.codes/genlint/internal/text"
)

// line is a single physical line of a source.
type line struct {
	raw     string // The line exactly as read, including its terminator
	trimmed string // The line with trailing '\r' and '\n' removed
	lnum    int    // Zero based line number
}

// eol reports whether the line had a terminator.
func (l line) eol() bool {
	return strings.HasSuffix(l.raw, "\n") || strings.HasSuffix(l.raw, "\r")
}

// pendingMarker is a jujutsu conflict marker held back until the marker
// length of the source is known.
type pendingMarker struct {
	diagnostic diagnostic.Diagnostic // The diagnostic to report if the length matches
	length     int                   // Length of the marker
}

// scanner holds the state carried from one line of a source to the next.
type scanner struct {
	runner  *Runner         // The run wide governor
	name    string          // Name of the source
	options Options         // Run configuration
	pending []pendingMarker // Conflict markers awaiting the source's marker length
	tracker marker.Tracker  // Works out the jujutsu marker length
	last    line            // The most recent line
	prev    line            // The most recent non-blank line, valid only if prev.lnum >= 0
	blanks  int             // Number of blank lines since prev
	lnum    int             // Number of the next line
}

// newScanner returns a scanner ready for the first line of a source.
func newScanner(name string, runner *Runner, options Options) *scanner {
	return &scanner{
		runner:  runner,
		name:    name,
		options: options,
		prev:    line{lnum: -1},
	}
}

// scan runs every per line check on raw, the next line of the source.
//
// It returns false if the run has been aborted.
func (s *scanner) scan(raw string) bool {
	current := line{
		raw:     raw,
		trimmed: strings.TrimRight(raw, "\r\n"),
		lnum:    s.lnum,
	}
	s.lnum++

	checks := [...]func(line) bool{
		s.mixIndent,
		s.trailingSpace,
		s.conflictMarker,
		s.longLine,
		s.consecutiveBlank,
	}

	for _, check := range checks {
		if !check(current) {
			return false
		}
	}

	s.last = current

	return true
}

// finish runs the checks that can only be decided at the end of the source.
//
// It returns false if the run has been aborted.
func (s *scanner) finish() bool {
	if !s.flushMarkers() {
		return false
	}

	// Nothing was read, there's nothing to lack a newline or end in blanks
	if s.lnum == 0 {
		return true
	}

	if !s.trailingBlanks() {
		return false
	}

	return s.finalNewline()
}

// emit offers d to the runner.
func (s *scanner) emit(d diagnostic.Diagnostic) bool {
	d.File = s.name
	return s.runner.Record(d)
}

// wants reports whether the check identified by code is enabled and its severity
// is still being recorded.
func (s *scanner) wants(code diagnostic.Code) bool {
	return s.options.Enabled(code) && s.runner.Accepting(code.Severity())
}

// lastCol returns the index of the last character of str, or 0 if it is empty.
func lastCol(str string) int {
	return max(text.Chars(str)-1, 0)
}
