package diagnostic

import (
	"fmt"
	"strings"
)

// Code identifies the check that produced a [Diagnostic], it is also how a check
// is referred to when disabling it.
type Code int

const (
	MixIndent        Code = iota // Leading indentation mixes tabs and spaces
	TrailingSpace                // Spaces or tabs at the end of a line
	ConflictMarker               // A version control conflict marker
	LongLine                     // A line wider than the configured maximum
	ConsecutiveBlank             // Too many blank lines in a row
	FinalNewline                 // The last line has no line terminator
)

// NumCodes is the number of distinct checks.
const NumCodes = int(FinalNewline) + 1

// codes maps every [Code] to its stable string form.
var codes = [...]string{
	MixIndent:        "mix-indent",
	TrailingSpace:    "trailing-space",
	ConflictMarker:   "conflict-marker",
	LongLine:         "long-line",
	ConsecutiveBlank: "consecutive-blank",
	FinalNewline:     "final-newline",
}

// Codes returns every [Code] in the order the checks run.
func Codes() []Code {
	return []Code{MixIndent, TrailingSpace, ConflictMarker, LongLine, ConsecutiveBlank, FinalNewline}
}

// String implements [fmt.Stringer] for [Code].
func (c Code) String() string {
	if c < 0 || int(c) >= len(codes) {
		return fmt.Sprintf("Code(%d)", int(c))
	}

	return codes[c]
}

// Severity returns the severity of every diagnostic reported by the check.
func (c Code) Severity() Severity {
	switch c {
	case ConflictMarker:
		return Error
	case MixIndent, TrailingSpace:
		return Warning
	default:
		return Information
	}
}

// ParseCode returns the [Code] whose string form is s.
func ParseCode(s string) (Code, error) {
	for code, name := range codes {
		if name == s {
			return Code(code), nil
		}
	}

	return 0, fmt.Errorf("unknown check %q, expected one of %s", s, strings.Join(codes[:], ", "))
}

// MarshalText implements [encoding.TextMarshaler] for [Code].
func (c Code) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(codes) {
		return nil, fmt.Errorf("invalid code: %d", int(c))
	}

	return []byte(codes[c]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] for [Code].
func (c *Code) UnmarshalText(text []byte) error {
	code, err := ParseCode(string(text))
	if err != nil {
		return err
	}

	*c = code

	return nil
}
