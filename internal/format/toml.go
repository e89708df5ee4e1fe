package format

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/genlint/internal/diagnostic"
)

// TOML is a [Renderer] that writes the diagnostics as a TOML array of tables
// called diagnostics.
type TOML struct{}

// document is the top level TOML document, TOML has no bare arrays.
type document struct {
	Diagnostics []diagnostic.Diagnostic `toml:"diagnostics"`
}

// Render implements [Renderer] for [TOML].
func (t TOML) Render(w io.Writer, diagnostics []diagnostic.Diagnostic) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	if err := encoder.Encode(document{Diagnostics: diagnostics}); err != nil {
		return fmt.Errorf("could not encode TOML: %w", err)
	}

	return nil
}
