// Package text implements the Unicode aware width and position helpers used by
// the lint rules and the renderers.
//
// Columns throughout genlint are character (rune) indices, not byte offsets, and
// width sensitive checks reason in terminal display columns. The functions here
// translate between the three.
package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of display columns a tab character occupies.
const TabWidth = 4

// condition is the width table used for every measurement.
//
// The default runewidth condition inspects the locale of the running process which
// would make diagnostics depend on the user's environment, so we pin the
// non East Asian table.
var condition = &runewidth.Condition{
	EastAsianWidth:     false,
	StrictEmojiNeutral: true,
}

// RuneWidth returns the number of terminal cells r occupies.
//
// A tab is always [TabWidth] wide, combining marks and non printing characters
// are 0 wide and wide CJK characters are 2 wide.
func RuneWidth(r rune) int {
	if r == '\t' {
		return TabWidth
	}

	return condition.RuneWidth(r)
}

// Width returns the display width of s, the sum of the [RuneWidth] of each of its runes.
func Width(s string) int {
	width := 0
	for _, r := range s {
		width += RuneWidth(r)
	}

	return width
}

// ColumnAtWidth returns the character index at which the cumulative display width
// of line first exceeds limit.
//
// If the line never exceeds limit, the number of characters in line is returned.
func ColumnAtWidth(line string, limit int) int {
	width := 0
	index := 0

	for _, r := range line {
		width += RuneWidth(r)
		if width > limit {
			return index
		}

		index++
	}

	return index
}

// Offset returns the absolute character offset of the zero based (line, col) coordinate
// within source, a snippet of text that begins at sourceLine.
//
// If line lies outside the snippet the offset is clamped to the last character in source,
// or 0 for an empty source.
func Offset(source string, sourceLine, line, col int) int {
	current := sourceLine
	if current == line {
		return col
	}

	index := 0
	for _, r := range source {
		if r == '\n' {
			current++
			if current == line {
				return index + col + 1
			}
		}

		index++
	}

	return max(utf8.RuneCountInString(source)-1, 0)
}

// FirstNonSpace returns the character index of the first rune in line that is
// not Unicode whitespace.
//
// The boolean return is false if line is entirely whitespace (or empty).
func FirstNonSpace(line string) (int, bool) {
	index := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return index, true
		}

		index++
	}

	return 0, false
}

// ByteRange returns the half open byte range [start, end) of the character at charIndex
// in s.
//
// A charIndex at or beyond the end of s returns the empty range at len(s).
func ByteRange(s string, charIndex int) (start, end int) {
	index := 0
	for offset := range s {
		if index == charIndex {
			_, size := utf8.DecodeRuneInString(s[offset:])
			return offset, offset + size
		}

		index++
	}

	return len(s), len(s)
}

// Chars returns the number of characters (runes) in s.
func Chars(s string) int {
	return utf8.RuneCountInString(s)
}
