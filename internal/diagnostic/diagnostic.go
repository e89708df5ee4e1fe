// Package diagnostic defines the data model shared by the lint engine and the renderers:
// the [Diagnostic] itself, its [Severity] and the [Code] identifying which check produced it.
package diagnostic

import "fmt"

// Diagnostic is a single positioned finding in a source.
//
// All positions are zero based and character (not byte) indexed, spans are inclusive
// at both ends. Source holds the verbatim text the span points into, which may cover
// more than one physical line, starting at SourceLine.
//
// Source, SourceLine and Helpers exist for the benefit of the human renderer and are
// never serialised.
type Diagnostic struct {
	File       string   `json:"file"     toml:"file"     yaml:"file"`     // Source identifier, "<stdin>" for standard input
	Line       int      `json:"lnum"     toml:"lnum"     yaml:"lnum"`     // Line the primary span starts on
	EndLine    int      `json:"end_lnum" toml:"end_lnum" yaml:"end_lnum"` // Line the primary span ends on
	Col        int      `json:"col"      toml:"col"      yaml:"col"`      // Column the primary span starts at
	EndCol     int      `json:"end_col"  toml:"end_col"  yaml:"end_col"`  // Column the primary span ends at
	Severity   Severity `json:"severity" toml:"severity" yaml:"severity"` // How serious the finding is
	Code       Code     `json:"code"     toml:"code"     yaml:"code"`     // The check that produced it
	Message    string   `json:"message"  toml:"message"  yaml:"message"`  // Human readable description
	Source     string   `json:"-"        toml:"-"        yaml:"-"`        // Verbatim text containing the span
	SourceLine int      `json:"-"        toml:"-"        yaml:"-"`        // Line at which Source begins
	Helpers    []Helper `json:"-"        toml:"-"        yaml:"-"`        // Secondary context spans, in order
}

// Helper is a secondary span attached to a [Diagnostic] to give it context, for
// example pointing at the previous non-blank line of a run of blank lines.
//
// Positions follow the same rules as the parent [Diagnostic] and are resolved
// against its Source.
type Helper struct {
	Message string // Label rendered next to the span
	Line    int    // Line the span starts on
	EndLine int    // Line the span ends on
	Col     int    // Column the span starts at
	EndCol  int    // Column the span ends at
}

// String returns a one line representation of a [Diagnostic].
//
// The location is one based and formatted so that most editors and terminals allow
// clicking on it to navigate to the position.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s", d.File, d.Line+1, d.Col+1, d.Severity, d.Code, d.Message)
}

