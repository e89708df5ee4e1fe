package genlint

import (
	"os"

	"golang.org/x/term"
)

// colour reports whether rendered diagnostics should be colourised.
//
// In auto mode that's only when they're going straight to a terminal and NO_COLOR
// isn't set.
func (a App) colour(options Options) bool {
	switch options.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if options.Output != "" || os.Getenv("NO_COLOR") != "" {
		return false
	}

	file, ok := a.stdout.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}
