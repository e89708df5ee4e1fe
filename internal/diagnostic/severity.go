package diagnostic

import "fmt"

// Severity is the seriousness of a [Diagnostic], each severity is limited independently.
type Severity int

const (
	Error       Severity = iota // Something that is almost certainly a mistake
	Warning                     // Probably a mistake, or at least untidy
	Information                 // A stylistic observation
)

// NumSeverities is the number of distinct severities, useful for sizing per severity tables.
const NumSeverities = int(Information) + 1

// Severities returns all the severities, most serious first.
func Severities() []Severity {
	return []Severity{Error, Warning, Information}
}

// String implements [fmt.Stringer] for [Severity].
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Information:
		return "information"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Level returns the name of the rendering level for the severity, this is the label
// shown in the header of the human readable output.
func (s Severity) Level() string {
	if s == Information {
		return "info"
	}

	return s.String()
}

// MarshalText implements [encoding.TextMarshaler] for [Severity].
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case Error, Warning, Information:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid severity: %d", int(s))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler] for [Severity].
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = Error
	case "warning":
		*s = Warning
	case "information":
		*s = Information
	default:
		return fmt.Errorf("unknown severity %q", text)
	}

	return nil
}
