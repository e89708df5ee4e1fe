// Package config loads genlint's optional TOML configuration file.
//
// The file uses the same names as the command line flags:
//
//	disable = ["long-line"]
//	exclude = ["vendor/*", "*.min.js"]
//	format = "json"
//	conflict-marker-style = "jj"
//	max-consecutive-blank = 2
//	max-errors = 0
//
// Anything set on the command line takes precedence over the file, which in turn
// takes precedence over the built in defaults.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the name of the configuration file looked for in the working
// directory when none is given explicitly.
const DefaultFile = ".genlint.toml"

// Keys of the configuration file.
const (
	KeyDisable             = "disable"
	KeyExclude             = "exclude"
	KeyFormat              = "format"
	KeyConflictMarkerStyle = "conflict-marker-style"
	KeyMaxLineLength       = "max-line-length"
	KeyMaxConsecutiveBlank = "max-consecutive-blank"
	KeyMaxErrors           = "max-errors"
	KeyMaxWarnings         = "max-warnings"
	KeyMaxInfo             = "max-info"
	KeyText                = "text"
)

// Config is the contents of a configuration file.
//
// Values are kept exactly as written, checking them is left to whoever applies them
// so that a bad value is reported the same way whether it came from a flag or the file.
type Config struct {
	defined             map[string]bool // Keys present in the file
	Path                string          `toml:"-"`
	Format              string          `toml:"format"`
	ConflictMarkerStyle string          `toml:"conflict-marker-style"`
	Disable             []string        `toml:"disable"`
	Exclude             []string        `toml:"exclude"`
	MaxLineLength       int             `toml:"max-line-length"`
	MaxConsecutiveBlank int             `toml:"max-consecutive-blank"`
	MaxErrors           int             `toml:"max-errors"`
	MaxWarnings         int             `toml:"max-warnings"`
	MaxInfo             int             `toml:"max-info"`
	Text                bool            `toml:"text"`
}

// Load reads and decodes the configuration file at path.
//
// Keys genlint doesn't know about are an error. A file that doesn't exist is also
// an error, one that wraps fs.ErrNotExist so callers looking for an optional file
// can tell the difference.
func Load(path string) (Config, error) {
	var cfg Config

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}

		return Config{}, fmt.Errorf(
			"config file %s has unknown key(s): %s, expected any of %s",
			path,
			strings.Join(unknown, ", "),
			strings.Join(Keys(), ", "),
		)
	}

	cfg.Path = path
	cfg.defined = make(map[string]bool)

	for _, key := range Keys() {
		if meta.IsDefined(key) {
			cfg.defined[key] = true
		}
	}

	return cfg, nil
}

// Defined reports whether key was set in the file.
func (c Config) Defined(key string) bool {
	return c.defined[key]
}

// Keys returns every key a configuration file may contain.
func Keys() []string {
	keys := []string{
		KeyDisable,
		KeyExclude,
		KeyFormat,
		KeyConflictMarkerStyle,
		KeyMaxLineLength,
		KeyMaxConsecutiveBlank,
		KeyMaxErrors,
		KeyMaxWarnings,
		KeyMaxInfo,
		KeyText,
	}
	slices.Sort(keys)

	return keys
}
