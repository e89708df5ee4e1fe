// Package marker recognises version control conflict marker lines.
//
// A marker line is a run of one repeated role character at the very start of a line,
// for example "<<<<<<< HEAD" or "=======". The role of the line is determined by the
// character alone, the [Style] (dialect) then decides which roles it recognises and how
// a finding is worded.
//
// Git dialects use markers of exactly [MinLength] characters. Jujutsu lengthens its
// markers when the conflicted text itself contains marker-like lines, so for the
// jujutsu dialects the marker length of a source is only known once the whole source
// has been seen, see [Tracker].
package marker

import (
	"fmt"
	"strings"
)

// MinLength is the minimum (and for git, the only) conflict marker length.
const MinLength = 7

// Role is the meaning of a marker line, independent of any dialect.
type Role int

const (
	Start          Role = iota // '<' Beginning of a conflict
	Diff3Base                  // '|' Beginning of the common ancestor section (diff3)
	JjBase                     // '%' Beginning of a jujutsu diff section
	Separator                  // '=' Boundary between the two sides
	JjSideA                    // '+' Beginning of a jujutsu snapshot side
	JjSnapshotBase             // '-' Beginning of a jujutsu base snapshot
	JjSideB                    // '\' Continuation of a jujutsu diff section
	End                        // '>' End of a conflict
)

// String implements [fmt.Stringer] for [Role].
func (r Role) String() string {
	switch r {
	case Start:
		return "Start"
	case Diff3Base:
		return "Diff3Base"
	case JjBase:
		return "JjBase"
	case Separator:
		return "Separator"
	case JjSideA:
		return "JjSideA"
	case JjSnapshotBase:
		return "JjSnapshot"
	case JjSideB:
		return "JjSideB"
	case End:
		return "End"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// roleOf returns the [Role] a marker character stands for, and whether
// c is a marker character at all.
func roleOf(c byte) (Role, bool) {
	switch c {
	case '<':
		return Start, true
	case '|':
		return Diff3Base, true
	case '%':
		return JjBase, true
	case '=':
		return Separator, true
	case '+':
		return JjSideA, true
	case '-':
		return JjSnapshotBase, true
	case '\\':
		return JjSideB, true
	case '>':
		return End, true
	default:
		return 0, false
	}
}

// Marker is a line recognised as marker shaped.
type Marker struct {
	Label  string // Free form text after the run, e.g. a branch name
	Role   Role   // What the line means
	Length int    // Number of repeated marker characters
}

// Parse reports whether line (with its line terminator removed) is shaped like a
// conflict marker and if so, returns it.
//
// A marker is a run of at least [MinLength] identical role characters starting at
// the first character of the line. Every role except [Separator] must be followed by a
// single space, after which anything is accepted as the label (including nothing).
// A [Separator] is the run alone.
func Parse(line string) (Marker, bool) {
	if line == "" {
		return Marker{}, false
	}

	c := line[0]

	role, ok := roleOf(c)
	if !ok {
		return Marker{}, false
	}

	// All role characters are ASCII so counting bytes is counting characters
	length := 1
	for length < len(line) && line[length] == c {
		length++
	}

	if length < MinLength {
		return Marker{}, false
	}

	rest := line[length:]

	if role == Separator {
		if rest != "" {
			return Marker{}, false
		}

		return Marker{Role: role, Length: length}, true
	}

	label, ok := strings.CutPrefix(rest, " ")
	if !ok {
		return Marker{}, false
	}

	return Marker{Role: role, Length: length, Label: label}, true
}
