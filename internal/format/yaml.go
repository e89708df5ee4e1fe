package format

import (
	"fmt"
	"io"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAML is a [Renderer] that writes the diagnostics as a YAML sequence.
type YAML struct{}

// Render implements [Renderer] for [YAML].
func (y YAML) Render(w io.Writer, diagnostics []diagnostic.Diagnostic) error {
	if diagnostics == nil {
		diagnostics = []diagnostic.Diagnostic{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(diagnostics); err != nil {
		return fmt.Errorf("could not encode YAML: %w", err)
	}

	return encoder.Close()
}
