package marker

import (
	"fmt"
	"slices"
	"strings"
)

// Style is a conflict marker dialect.
type Style int

const (
	Git        Style = iota // Plain git merge conflicts
	GitDiff3                // git with merge.conflictStyle=diff3
	Jj                      // jujutsu's default "diff" markers
	JjDiff3                 // jujutsu with ui.conflict-marker-style=git
	JjSnapshot              // jujutsu with ui.conflict-marker-style=snapshot
)

// styles holds everything that varies between dialects.
var styles = [...]struct {
	name    string // Name as given on the command line
	dialect string // Dialect name used in messages
	roles   []Role // Roles the dialect recognises
}{
	Git: {
		name:    "git",
		dialect: "Git",
		roles:   []Role{Start, Separator, End},
	},
	GitDiff3: {
		name:    "git-diff3",
		dialect: "Git diff3",
		roles:   []Role{Start, Diff3Base, Separator, End},
	},
	Jj: {
		name:    "jj",
		dialect: "Jujutsu",
		roles:   []Role{Start, JjBase, JjSideA, JjSideB, End},
	},
	JjDiff3: {
		name:    "jj-diff3",
		dialect: "Jujutsu diff3",
		roles:   []Role{Start, Diff3Base, Separator, End},
	},
	JjSnapshot: {
		name:    "jj-snapshot",
		dialect: "Jujutsu snapshot",
		roles:   []Role{Start, JjSideA, JjSnapshotBase, End},
	},
}

// Styles returns all the supported dialects.
func Styles() []Style {
	return []Style{Git, GitDiff3, Jj, JjDiff3, JjSnapshot}
}

// ParseStyle returns the [Style] named s.
func ParseStyle(s string) (Style, error) {
	names := make([]string, 0, len(styles))
	for style, info := range styles {
		if info.name == s {
			return Style(style), nil
		}

		names = append(names, info.name)
	}

	return 0, fmt.Errorf("unknown conflict marker style %q, expected one of %s", s, strings.Join(names, ", "))
}

// valid reports whether s is one of the declared styles.
func (s Style) valid() bool {
	return s >= 0 && int(s) < len(styles)
}

// String implements [fmt.Stringer] for [Style].
func (s Style) String() string {
	if !s.valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}

	return styles[s].name
}

// Allows reports whether the dialect recognises role.
func (s Style) Allows(role Role) bool {
	if !s.valid() {
		return false
	}

	return slices.Contains(styles[s].roles, role)
}

// Dynamic reports whether the dialect's marker length is decided per source
// rather than fixed at [MinLength].
func (s Style) Dynamic() bool {
	switch s {
	case Jj, JjDiff3, JjSnapshot:
		return true
	default:
		return false
	}
}

// Message returns the diagnostic message for a recognised marker line.
func (s Style) Message(line string) string {
	dialect := "Unknown"
	if s.valid() {
		dialect = styles[s].dialect
	}

	return dialect + " conflict marker: " + line
}

// MarshalText implements [encoding.TextMarshaler] for [Style].
func (s Style) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid conflict marker style: %d", int(s))
	}

	return []byte(styles[s].name), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] for [Style].
func (s *Style) UnmarshalText(text []byte) error {
	style, err := ParseStyle(string(text))
	if err != nil {
		return err
	}

	*s = style

	return nil
}
