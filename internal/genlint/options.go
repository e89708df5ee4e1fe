package genlint

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.followtheprocess.codes/genlint/internal/config"
	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/format"
	"go.followtheprocess.codes/genlint/internal/lint"
	"go.followtheprocess.codes/genlint/internal/marker"
)

// Choices for Options.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options are the options passed to genlint on the command line.
type Options struct {
	// Set is the set of options given explicitly, keyed by their long flag name.
	//
	// Values from the config file only replace options that are not in Set, and
	// once applied are added to it.
	Set map[string]bool

	// Output is the name of a file to write the diagnostics to, if empty they
	// are written to stdout.
	Output string

	// Format is the name of the output format e.g. plain, json.
	Format string

	// ConflictMarkerStyle is the name of the conflict marker dialect to recognise.
	ConflictMarkerStyle string

	// Color controls colourised output: auto, always or never.
	Color string

	// Config is the path to a config file, if empty, .genlint.toml in the
	// working directory is used if it exists.
	Config string

	// Inputs are the files, directories or glob patterns to lint.
	Inputs []string

	// Exclude are glob patterns of paths to skip.
	Exclude []string

	// Disable are the names of checks that should not run.
	Disable []string

	// MaxLineLength is the widest a line may be, in display columns.
	MaxLineLength int

	// MaxConsecutiveBlank is the longest permitted run of blank lines.
	MaxConsecutiveBlank int

	// MaxErrors is the error limit, reaching it stops the run. 0 means no limit.
	MaxErrors int

	// MaxWarnings is the warning limit. 0 means no limit.
	MaxWarnings int

	// MaxInfo is the information limit. 0 means no limit.
	MaxInfo int

	// Stdin lints standard input instead of files.
	Stdin bool

	// Text treats every source as text, skipping binary detection.
	Text bool

	// Statistics prints a table of diagnostic counts after the summary.
	Statistics bool

	// Watch re-runs the lint whenever an input file changes.
	Watch bool

	// Debug enables debug logging.
	Debug bool
}

// DefaultOptions returns the options genlint uses when nothing else is specified.
func DefaultOptions() Options {
	return Options{
		Set:                 make(map[string]bool),
		Format:              format.NamePlain,
		ConflictMarkerStyle: marker.Git.String(),
		Color:               ColorAuto,
		MaxLineLength:       lint.DefaultMaxLineLength,
		MaxConsecutiveBlank: lint.DefaultMaxConsecutiveBlank,
		MaxErrors:           lint.DefaultMaxDiagnostics,
		MaxWarnings:         lint.DefaultMaxDiagnostics,
		MaxInfo:             lint.DefaultMaxDiagnostics,
	}
}

// Validate reports whether the Options are valid, returning an error
// if they are not.
//
// nil means the options are valid.
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

// resolve checks the options and converts them into the engine's [lint.Options].
func (o Options) resolve() (lint.Options, error) {
	switch {
	case o.Stdin && len(o.Inputs) != 0:
		return lint.Options{}, errors.New("--stdin and --input cannot be used together")
	case !o.Stdin && len(o.Inputs) == 0:
		return lint.Options{}, errors.New("nothing to lint, pass --stdin or one or more --input")
	case o.Stdin && len(o.Exclude) != 0:
		return lint.Options{}, errors.New("--exclude cannot be used with --stdin")
	case o.Stdin && o.Watch:
		return lint.Options{}, errors.New("--watch cannot be used with --stdin")
	}

	if !slices.Contains(format.Names(), o.Format) {
		return lint.Options{}, fmt.Errorf(
			"invalid option for --format %q, allowed values are %s",
			o.Format,
			strings.Join(format.Names(), ", "),
		)
	}

	switch o.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return lint.Options{}, fmt.Errorf(
			"invalid option for --color %q, allowed values are %s, %s, %s",
			o.Color,
			ColorAuto,
			ColorAlways,
			ColorNever,
		)
	}

	style, err := marker.ParseStyle(o.ConflictMarkerStyle)
	if err != nil {
		return lint.Options{}, fmt.Errorf("invalid option for --conflict-marker-style: %w", err)
	}

	disable := make([]diagnostic.Code, 0, len(o.Disable))
	for _, name := range o.Disable {
		code, err := diagnostic.ParseCode(name)
		if err != nil {
			return lint.Options{}, fmt.Errorf("invalid option for --disable: %w", err)
		}

		disable = append(disable, code)
	}

	for _, pattern := range o.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return lint.Options{}, fmt.Errorf("invalid option for --exclude %q: %w", pattern, err)
		}
	}

	if slices.Contains(disable, diagnostic.LongLine) && o.Set[config.KeyMaxLineLength] {
		return lint.Options{}, errors.New("cannot use --max-line-length when 'long-line' is disabled")
	}

	if slices.Contains(disable, diagnostic.ConsecutiveBlank) && o.Set[config.KeyMaxConsecutiveBlank] {
		return lint.Options{}, errors.New("cannot use --max-consecutive-blank when 'consecutive-blank' is disabled")
	}

	options := lint.Options{
		Disable:             disable,
		MaxLineLength:       o.MaxLineLength,
		MaxConsecutiveBlank: o.MaxConsecutiveBlank,
		MaxErrors:           o.MaxErrors,
		MaxWarnings:         o.MaxWarnings,
		MaxInfo:             o.MaxInfo,
		Text:                o.Text,
		ConflictMarkerStyle: style,
	}

	if err := options.Validate(); err != nil {
		return lint.Options{}, err
	}

	return options, nil
}

// apply fills in every option that wasn't given explicitly and is defined in cfg.
func (o *Options) apply(cfg config.Config) {
	if o.Set == nil {
		o.Set = make(map[string]bool)
	}

	// take reports whether the config file's value for key should be used
	take := func(key string) bool {
		if o.Set[key] || !cfg.Defined(key) {
			return false
		}

		o.Set[key] = true

		return true
	}

	if take(config.KeyDisable) {
		o.Disable = cfg.Disable
	}

	// Exclusions from the file don't apply to stdin
	if !o.Stdin && take(config.KeyExclude) {
		o.Exclude = cfg.Exclude
	}

	if take(config.KeyFormat) {
		o.Format = cfg.Format
	}

	if take(config.KeyConflictMarkerStyle) {
		o.ConflictMarkerStyle = cfg.ConflictMarkerStyle
	}

	if take(config.KeyMaxLineLength) {
		o.MaxLineLength = cfg.MaxLineLength
	}

	if take(config.KeyMaxConsecutiveBlank) {
		o.MaxConsecutiveBlank = cfg.MaxConsecutiveBlank
	}

	if take(config.KeyMaxErrors) {
		o.MaxErrors = cfg.MaxErrors
	}

	if take(config.KeyMaxWarnings) {
		o.MaxWarnings = cfg.MaxWarnings
	}

	if take(config.KeyMaxInfo) {
		o.MaxInfo = cfg.MaxInfo
	}

	if take(config.KeyText) {
		o.Text = cfg.Text
	}
}

// normalise splits any comma separated list values, so that "--disable a,b" and
// "--disable a --disable b" mean the same thing.
func (o *Options) normalise() {
	o.Inputs = splitList(o.Inputs)
	o.Exclude = splitList(o.Exclude)
	o.Disable = splitList(o.Disable)
}

// splitList splits each of values on commas, dropping empty entries.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for item := range strings.SplitSeq(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}

	return out
}
