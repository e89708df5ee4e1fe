package format

import (
	"encoding/json"
	"fmt"
	"io"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
)

// JSON is a [Renderer] that writes all the diagnostics as a single pretty printed JSON array.
type JSON struct{}

// Render implements [Renderer] for [JSON].
//
// No diagnostics renders as an empty array.
func (j JSON) Render(w io.Writer, diagnostics []diagnostic.Diagnostic) error {
	if diagnostics == nil {
		diagnostics = []diagnostic.Diagnostic{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(diagnostics); err != nil {
		return fmt.Errorf("could not encode JSON: %w", err)
	}

	return nil
}

// JSONL is a [Renderer] that writes one compact JSON object per diagnostic, each on its own line.
type JSONL struct{}

// Render implements [Renderer] for [JSONL].
func (j JSONL) Render(w io.Writer, diagnostics []diagnostic.Diagnostic) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	for _, d := range diagnostics {
		if err := encoder.Encode(d); err != nil {
			return fmt.Errorf("could not encode JSON: %w", err)
		}
	}

	return nil
}
