package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/text"
	"go.followtheprocess.codes/hue"
)

// Styles.
const (
	errorStyle   = hue.Red | hue.Bold
	warningStyle = hue.Yellow | hue.Bold
	infoStyle    = hue.Cyan | hue.Bold
	gutterStyle  = hue.Blue | hue.Bold
	helperStyle  = hue.Blue | hue.Bold
	messageStyle = hue.Bold
)

// Span marks.
const (
	primaryMark = '^'
	helperMark  = '-'
)

// Plain is a [Renderer] that writes each diagnostic as an annotated snippet
// of the source it points into, for humans.
//
//	warning[trailing-space]: Trailing whitespaces or tabs
//	 --> main.go:2:11
//	  |
//	2 | let x = 5;
//	  |           ^^
type Plain struct {
	Color bool // Whether to colour the output
}

// annotation is a span to be underlined in a snippet.
type annotation struct {
	label   string    // Text written after the underline, may be empty
	style   hue.Style // Colour of the underline and label
	line    int       // Line the span starts on
	endLine int       // Line the span ends on
	col     int       // Column the span starts at
	endCol  int       // Column the span ends at
	mark    rune      // Character used to underline the span
}

// Render implements [Renderer] for [Plain].
func (p Plain) Render(w io.Writer, diagnostics []diagnostic.Diagnostic) error {
	s := &strings.Builder{}
	for _, d := range diagnostics {
		p.snippet(s, d)
		s.WriteByte('\n')
	}

	if _, err := io.WriteString(w, s.String()); err != nil {
		return fmt.Errorf("could not write diagnostics: %w", err)
	}

	return nil
}

// snippet writes the full annotated rendering of a single diagnostic to s.
func (p Plain) snippet(s *strings.Builder, d diagnostic.Diagnostic) {
	style := severityStyle(d.Severity)

	fmt.Fprintf(s, "%s%s\n",
		p.paint(style, fmt.Sprintf("%s[%s]", d.Severity.Level(), d.Code)),
		p.paint(messageStyle, ": "+d.Message),
	)

	annotations := make([]annotation, 0, len(d.Helpers)+1)
	annotations = append(annotations, annotation{
		style:   style,
		line:    d.Line,
		endLine: d.EndLine,
		col:     d.Col,
		endCol:  d.EndCol,
		mark:    primaryMark,
	})

	for _, helper := range d.Helpers {
		annotations = append(annotations, annotation{
			label:   helper.Message,
			style:   helperStyle,
			line:    helper.Line,
			endLine: helper.EndLine,
			col:     helper.Col,
			endCol:  helper.EndCol,
			mark:    helperMark,
		})
	}

	lines := sourceLines(d.Source)
	last := d.SourceLine + len(lines) - 1
	width := len(strconv.Itoa(last + 1))
	pad := strings.Repeat(" ", width)

	fmt.Fprintf(s, "%s%s %s:%d:%d\n", pad, p.paint(gutterStyle, "-->"), d.File, d.Line+1, d.Col+1)
	fmt.Fprintf(s, "%s %s\n", pad, p.paint(gutterStyle, "|"))

	elided := false
	for i, content := range lines {
		lnum := d.SourceLine + i
		if !shown(lnum, annotations) {
			if !elided {
				fmt.Fprintf(s, "%s\n", p.paint(gutterStyle, "..."))
				elided = true
			}

			continue
		}

		elided = false

		gutter := p.paint(gutterStyle, fmt.Sprintf("%*d |", width, lnum+1))
		if content == "" {
			fmt.Fprintf(s, "%s\n", gutter)
		} else {
			fmt.Fprintf(s, "%s %s\n", gutter, expand(content))
		}

		for _, a := range annotations {
			start, end, ok := a.on(d, lnum, content)
			if !ok {
				continue
			}

			from, _ := text.ByteRange(content, start)
			column := text.Width(content[:from])
			marks := strings.Repeat(string(a.mark), underlineWidth(content, start, end))

			underline := strings.Repeat(" ", column) + p.paint(a.style, marks)
			if a.label != "" && a.endLine == lnum {
				underline += " " + p.paint(a.style, a.label)
			}

			fmt.Fprintf(s, "%s %s %s\n", pad, p.paint(gutterStyle, "|"), underline)
		}
	}
}

// paint applies style to str if colour is enabled.
func (p Plain) paint(style hue.Style, str string) string {
	if !p.Color {
		return str
	}

	return style.Text(str)
}

// on returns the character range of the annotation that falls on line lnum of d's
// source, whose content is given, and whether any of it does.
//
// Only the first and last lines of a span are underlined, the first running to the
// end of its line and the last from the start of its line.
func (a annotation) on(d diagnostic.Diagnostic, lnum int, content string) (start, end int, ok bool) {
	if lnum != a.line && lnum != a.endLine {
		return 0, 0, false
	}

	lineStart := text.Offset(d.Source, d.SourceLine, lnum, 0)

	if lnum == a.line {
		start = max(text.Offset(d.Source, d.SourceLine, a.line, a.col)-lineStart, 0)
	}

	if lnum == a.endLine {
		end = text.Offset(d.Source, d.SourceLine, a.endLine, a.endCol) - lineStart
	} else {
		end = text.Chars(content) - 1
	}

	return start, max(end, start), true
}

// shown reports whether line lnum of a snippet should be printed. Lines on which a span
// starts or ends are always shown, as are their immediate neighbours, anything else
// is collapsed.
func shown(lnum int, annotations []annotation) bool {
	for _, a := range annotations {
		for _, anchor := range [...]int{a.line, a.endLine} {
			if lnum >= anchor-1 && lnum <= anchor+1 {
				return true
			}
		}
	}

	return false
}

// underlineWidth returns the display width of the characters start..end (inclusive) of
// content, never less than 1 so that spans over nothing are still visible.
func underlineWidth(content string, start, end int) int {
	from, _ := text.ByteRange(content, start)
	_, to := text.ByteRange(content, end)

	return max(text.Width(content[from:max(to, from)]), 1)
}

// sourceLines splits a diagnostic's source into its lines, without terminators.
func sourceLines(source string) []string {
	lines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// expand replaces each tab in line with [text.TabWidth] spaces, so that the underlines
// computed with [text.Width] line up.
func expand(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", text.TabWidth))
}

// severityStyle returns the colour used for diagnostics of the given severity.
func severityStyle(severity diagnostic.Severity) hue.Style {
	switch severity {
	case diagnostic.Error:
		return errorStyle
	case diagnostic.Warning:
		return warningStyle
	default:
		return infoStyle
	}
}
