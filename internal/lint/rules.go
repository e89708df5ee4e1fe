package lint

import (
	"fmt"
	"strings"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/marker"
	"go.followtheprocess.codes/genlint/internal/text"
)

// Every check below has the same shape: it inspects the current line and the carried
// over state, offers at most one diagnostic and returns false only if the run
// has been aborted.

// mixIndent reports indentation that contains both spaces and tabs.
func (s *scanner) mixIndent(l line) bool {
	if !s.wants(diagnostic.MixIndent) {
		return true
	}

	indent, ok := text.FirstNonSpace(l.trimmed)
	if !ok {
		// A whitespace only line is all indent
		indent = text.Chars(l.trimmed)
	}

	spaceCol, tabCol := -1, -1

	index := 0
	for _, r := range l.trimmed {
		if index >= indent || (spaceCol != -1 && tabCol != -1) {
			break
		}

		switch r {
		case ' ':
			if spaceCol == -1 {
				spaceCol = index
			}
		case '\t':
			if tabCol == -1 {
				tabCol = index
			}
		}

		index++
	}

	if spaceCol == -1 || tabCol == -1 {
		return true
	}

	// An indent that starts with a space is broken by its first tab, anything else by
	// its first space
	col, startsWith := spaceCol, "tabs"
	if spaceCol == 0 {
		col, startsWith = tabCol, "whitespaces"
	}

	return s.emit(diagnostic.Diagnostic{
		Line:       l.lnum,
		EndLine:    l.lnum,
		Col:        col,
		EndCol:     col,
		Severity:   diagnostic.Warning,
		Code:       diagnostic.MixIndent,
		Message:    "Mixed tabs and whitespaces",
		Source:     l.raw,
		SourceLine: l.lnum,
		Helpers: []diagnostic.Helper{
			{
				Message: "This line starts with " + startsWith,
				Line:    l.lnum,
				EndLine: l.lnum,
				Col:     0,
				EndCol:  col - 1,
			},
		},
	})
}

// trailingSpace reports spaces and tabs at the end of a line.
func (s *scanner) trailingSpace(l line) bool {
	if !s.wants(diagnostic.TrailingSpace) {
		return true
	}

	stripped := strings.TrimRight(l.trimmed, " \t")
	if len(stripped) == len(l.trimmed) {
		return true
	}

	return s.emit(diagnostic.Diagnostic{
		Line:       l.lnum,
		EndLine:    l.lnum,
		Col:        text.Chars(stripped),
		EndCol:     text.Chars(l.trimmed) - 1,
		Severity:   diagnostic.Warning,
		Code:       diagnostic.TrailingSpace,
		Message:    "Trailing whitespaces or tabs",
		Source:     l.raw,
		SourceLine: l.lnum,
	})
}

// conflictMarker reports version control conflict marker lines in the configured dialect.
//
// Git markers are always [marker.MinLength] long so are reported straight away, jujutsu
// markers are held back until the end of the source when their length is known.
func (s *scanner) conflictMarker(l line) bool {
	if !s.options.Enabled(diagnostic.ConflictMarker) {
		return true
	}

	if !s.runner.Accepting(diagnostic.Error) {
		return false
	}

	style := s.options.ConflictMarkerStyle

	m, ok := marker.Parse(l.trimmed)
	if style.Dynamic() {
		s.tracker.Observe(m, ok)
	}

	if !ok || !style.Allows(m.Role) {
		return true
	}

	d := diagnostic.Diagnostic{
		Line:       l.lnum,
		EndLine:    l.lnum,
		Col:        0,
		EndCol:     lastCol(l.trimmed),
		Severity:   diagnostic.Error,
		Code:       diagnostic.ConflictMarker,
		Message:    style.Message(l.trimmed),
		Source:     l.raw,
		SourceLine: l.lnum,
	}

	if style.Dynamic() {
		s.pending = append(s.pending, pendingMarker{diagnostic: d, length: m.Length})
		return true
	}

	if m.Length != marker.MinLength {
		return true
	}

	return s.emit(d)
}

// flushMarkers reports the held back jujutsu markers whose length matches the
// source's marker length.
func (s *scanner) flushMarkers() bool {
	length := s.tracker.Length()

	for _, pending := range s.pending {
		if pending.length != length {
			continue
		}

		if !s.emit(pending.diagnostic) {
			return false
		}
	}

	s.pending = nil

	return true
}

// longLine reports lines wider than the configured maximum.
func (s *scanner) longLine(l line) bool {
	if !s.wants(diagnostic.LongLine) {
		return true
	}

	limit := s.options.MaxLineLength

	// No line can be wider than 4 columns per byte, skip the width calculation
	// for lines that obviously fit
	if len(l.trimmed) <= limit/text.TabWidth {
		return true
	}

	width := text.Width(l.trimmed)
	if width <= limit {
		return true
	}

	return s.emit(diagnostic.Diagnostic{
		Line:       l.lnum,
		EndLine:    l.lnum,
		Col:        text.ColumnAtWidth(l.trimmed, limit),
		EndCol:     lastCol(l.trimmed),
		Severity:   diagnostic.Information,
		Code:       diagnostic.LongLine,
		Message:    fmt.Sprintf("Too long line (%d/%d)", width, limit),
		Source:     l.raw,
		SourceLine: l.lnum,
	})
}

// consecutiveBlank tracks runs of blank lines, reporting a run longer than the configured
// maximum once the next non-blank line closes it.
func (s *scanner) consecutiveBlank(l line) bool {
	if l.trimmed == "" {
		s.blanks++
		return true
	}

	ok := true
	if s.blanks > s.options.MaxConsecutiveBlank && s.wants(diagnostic.ConsecutiveBlank) {
		var helpers []diagnostic.Helper

		if s.prev.lnum >= 0 {
			helpers = append(helpers, s.previousHelper())
		}

		helpers = append(helpers, diagnostic.Helper{
			Message: "Next non-blank line",
			Line:    l.lnum,
			EndLine: l.lnum,
			Col:     0,
			EndCol:  lastCol(l.trimmed),
		})

		ok = s.emit(diagnostic.Diagnostic{
			Line:       s.prev.lnum + 1,
			EndLine:    l.lnum - 1,
			Col:        0,
			EndCol:     0,
			Severity:   diagnostic.Information,
			Code:       diagnostic.ConsecutiveBlank,
			Message:    s.blankMessage(),
			Source:     s.blankSource() + l.trimmed + "\n",
			SourceLine: max(s.prev.lnum, 0),
			Helpers:    helpers,
		})
	}

	s.prev = l
	s.blanks = 0

	return ok
}

// trailingBlanks reports a source that ends in a run of blank lines longer than the
// configured maximum.
func (s *scanner) trailingBlanks() bool {
	if s.last.trimmed != "" || s.blanks <= s.options.MaxConsecutiveBlank {
		return true
	}

	if !s.wants(diagnostic.ConsecutiveBlank) {
		return true
	}

	var helpers []diagnostic.Helper
	if s.prev.lnum >= 0 {
		helpers = []diagnostic.Helper{s.previousHelper()}
	}

	return s.emit(diagnostic.Diagnostic{
		Line:       s.prev.lnum + 1,
		EndLine:    s.last.lnum,
		Col:        0,
		EndCol:     0,
		Severity:   diagnostic.Information,
		Code:       diagnostic.ConsecutiveBlank,
		Message:    s.blankMessage(),
		Source:     s.blankSource(),
		SourceLine: max(s.prev.lnum, 0),
		Helpers:    helpers,
	})
}

// previousHelper returns the helper span pointing at the previous non-blank line.
func (s *scanner) previousHelper() diagnostic.Helper {
	return diagnostic.Helper{
		Message: "Previous non-blank line",
		Line:    s.prev.lnum,
		EndLine: s.prev.lnum,
		Col:     0,
		EndCol:  lastCol(s.prev.trimmed),
	}
}

// blankSource returns the previous non-blank line (if there is one) followed by
// the current run of blank lines.
func (s *scanner) blankSource() string {
	blanks := strings.Repeat("\n", s.blanks)
	if s.prev.lnum < 0 {
		return blanks
	}

	return s.prev.trimmed + "\n" + blanks
}

// blankMessage returns the message for the current run of blank lines.
func (s *scanner) blankMessage() string {
	return fmt.Sprintf("Too many consecutive blank lines (%d/%d)", s.blanks, s.options.MaxConsecutiveBlank)
}

// finalNewline reports a source whose last line has no terminator.
func (s *scanner) finalNewline() bool {
	if s.last.eol() || !s.wants(diagnostic.FinalNewline) {
		return true
	}

	col := lastCol(s.last.trimmed)

	return s.emit(diagnostic.Diagnostic{
		Line:       s.last.lnum,
		EndLine:    s.last.lnum,
		Col:        col,
		EndCol:     col,
		Severity:   diagnostic.Information,
		Code:       diagnostic.FinalNewline,
		Message:    "Missing final newline",
		Source:     s.last.raw,
		SourceLine: s.last.lnum,
	})
}
