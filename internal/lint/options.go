package lint

import (
	"errors"
	"fmt"
	"slices"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/marker"
)

// Defaults.
const (
	// DefaultMaxLineLength is the default maximum display width of a line.
	DefaultMaxLineLength = 120

	// DefaultMaxConsecutiveBlank is the default maximum number of blank lines in a row.
	DefaultMaxConsecutiveBlank = 1

	// DefaultMaxDiagnostics is the default per severity limit.
	DefaultMaxDiagnostics = 50
)

// Options configure a lint run. They are resolved once before any source is scanned
// and shared, read only, by every source in the run.
type Options struct {
	// Disable is the set of checks that should not run.
	Disable []diagnostic.Code `toml:"disable"`

	// MaxLineLength is the widest (in display columns) a line may be before
	// a long-line diagnostic is reported.
	MaxLineLength int `toml:"max-line-length"`

	// MaxConsecutiveBlank is the longest permitted run of blank lines.
	MaxConsecutiveBlank int `toml:"max-consecutive-blank"`

	// MaxErrors is the number of errors after which the whole run stops, 0 means no limit.
	MaxErrors int `toml:"max-errors"`

	// MaxWarnings is the number of warnings after which further warnings are dropped,
	// 0 means no limit.
	MaxWarnings int `toml:"max-warnings"`

	// MaxInfo is the number of information diagnostics after which further ones are dropped,
	// 0 means no limit.
	MaxInfo int `toml:"max-info"`

	// Text treats every source as text, skipping binary detection.
	Text bool `toml:"text"`

	// ConflictMarkerStyle is the conflict marker dialect to recognise.
	ConflictMarkerStyle marker.Style `toml:"conflict-marker-style"`
}

// DefaultOptions returns the default [Options].
func DefaultOptions() Options {
	return Options{
		MaxLineLength:       DefaultMaxLineLength,
		MaxConsecutiveBlank: DefaultMaxConsecutiveBlank,
		MaxErrors:           DefaultMaxDiagnostics,
		MaxWarnings:         DefaultMaxDiagnostics,
		MaxInfo:             DefaultMaxDiagnostics,
		ConflictMarkerStyle: marker.Git,
	}
}

// Enabled reports whether the check identified by code should run.
func (o Options) Enabled(code diagnostic.Code) bool {
	return !slices.Contains(o.Disable, code)
}

// Limit returns the configured limit for severity, 0 meaning unbounded.
func (o Options) Limit(severity diagnostic.Severity) int {
	switch severity {
	case diagnostic.Error:
		return o.MaxErrors
	case diagnostic.Warning:
		return o.MaxWarnings
	case diagnostic.Information:
		return o.MaxInfo
	default:
		return 0
	}
}

// Validate reports whether the Options are valid, returning an error
// if they are not.
//
// nil means the options are valid.
func (o Options) Validate() error {
	var errs []error

	if o.MaxLineLength < 1 {
		errs = append(errs, fmt.Errorf("max line length must be at least 1, got %d", o.MaxLineLength))
	}

	if o.MaxConsecutiveBlank < 0 {
		errs = append(errs, fmt.Errorf("max consecutive blank lines cannot be negative, got %d", o.MaxConsecutiveBlank))
	}

	for _, severity := range diagnostic.Severities() {
		if limit := o.Limit(severity); limit < 0 {
			errs = append(errs, fmt.Errorf("max %s limit cannot be negative, got %d", severity, limit))
		}
	}

	for _, code := range o.Disable {
		if _, err := code.MarshalText(); err != nil {
			errs = append(errs, fmt.Errorf("cannot disable check: %w", err))
		}
	}

	if _, err := o.ConflictMarkerStyle.MarshalText(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
