// Package format provides the renderers that turn a run's diagnostics into output.
//
// Notably, the package provides the [Renderer] interface so the rest of the program
// can write diagnostics in a format-agnostic way.
//
// It also provides the built in renderers: an annotated human readable form plus
// JSON, JSON lines, YAML and TOML for machines.
package format

import (
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
)

// Names of the built in formats.
const (
	NamePlain = "plain"
	NameJSON  = "json"
	NameJSONL = "jsonl"
	NameYAML  = "yaml"
	NameTOML  = "toml"
)

// Renderer is the interface defining a mechanism for writing a set of diagnostics
// in a particular format.
type Renderer interface {
	// Render writes diagnostics, in the order given, to w.
	Render(w io.Writer, diagnostics []diagnostic.Diagnostic) error
}

// Names returns the names of all the built in formats.
func Names() []string {
	return []string{NamePlain, NameJSON, NameJSONL, NameYAML, NameTOML}
}

// Get returns the [Renderer] for the format called name.
//
// color only affects the plain format.
func Get(name string, color bool) (Renderer, error) {
	switch name {
	case NamePlain:
		return Plain{Color: color}, nil
	case NameJSON:
		return JSON{}, nil
	case NameJSONL:
		return JSONL{}, nil
	case NameYAML:
		return YAML{}, nil
	case NameTOML:
		return TOML{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
}
