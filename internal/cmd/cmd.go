// Package cmd implements genlint's CLI.
package cmd

import (
	"context"
	"strings"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/genlint/internal/genlint"
	"go.followtheprocess.codes/genlint/internal/lint"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const long = `
genlint is a fast, configurable linter for plain text.

It reports mixed indentation, trailing whitespace, version control conflict markers,
lines that are too long, runs of blank lines and a missing final newline, in any
file, regardless of language.

Inputs may be files, directories (linted recursively, skipping hidden directories)
or glob patterns. Options not given on the command line are read from the config
file, .genlint.toml in the current directory unless --config says otherwise.

Diagnostics do not cause a non-zero exit, only invalid options or failures do.
`

// shorthands maps each flag's short name to its long name.
var shorthands = map[rune]string{
	's': "stdin",
	'i': "input",
	'e': "exclude",
	'f': "format",
	'o': "output",
	'd': "disable",
	'a': "text",
	'l': "max-line-length",
	'c': "max-consecutive-blank",
}

// Build builds and returns the genlint CLI, parsing args.
func Build(args []string) (*cli.Command, error) {
	options := genlint.DefaultOptions()

	return cli.New(
		"genlint",
		cli.Short("A configurable linter for plain text"),
		cli.Long(long),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Lint standard input", "cat notes.txt | genlint --stdin"),
		cli.Example("Lint a directory, skipping generated files", "genlint --input ./docs --exclude '*.gen.md'"),
		cli.Example("Lint markdown files with a narrower limit", "genlint --input '*.md' --max-line-length 80"),
		cli.Example("Write JSON diagnostics to a file", "genlint --input . --format json --output lint.json"),
		cli.Example("Look for jujutsu conflict markers only", "genlint --input . --disable long-line,mix-indent --conflict-marker-style jj"),
		cli.Allow(cli.NoArgs()),
		cli.OverrideArgs(args),
		cli.Flag(&options.Stdin, "stdin", 's', "Lint standard input"),
		cli.Flag(&options.Inputs, "input", 'i', "Files, directories or glob patterns to lint"),
		cli.Flag(&options.Exclude, "exclude", 'e', "Glob patterns of files to skip"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of plain, json, jsonl, yaml, toml",
			cli.FlagDefault(options.Format),
		),
		cli.Flag(&options.Output, "output", 'o', "Write diagnostics to this file instead of stdout"),
		cli.Flag(&options.Disable, "disable", 'd', "Checks to turn off"),
		cli.Flag(&options.Text, "text", 'a', "Treat every file as text, even if it looks binary"),
		cli.Flag(
			&options.MaxLineLength,
			"max-line-length",
			'l',
			"Widest a line may be, in columns",
			cli.FlagDefault(lint.DefaultMaxLineLength),
		),
		cli.Flag(
			&options.MaxConsecutiveBlank,
			"max-consecutive-blank",
			'c',
			"Most blank lines allowed in a row",
			cli.FlagDefault(lint.DefaultMaxConsecutiveBlank),
		),
		cli.Flag(
			&options.MaxErrors,
			"max-errors",
			flag.NoShortHand,
			"Stop after this many errors, 0 for no limit",
			cli.FlagDefault(lint.DefaultMaxDiagnostics),
		),
		cli.Flag(
			&options.MaxWarnings,
			"max-warnings",
			flag.NoShortHand,
			"Stop reporting warnings after this many, 0 for no limit",
			cli.FlagDefault(lint.DefaultMaxDiagnostics),
		),
		cli.Flag(
			&options.MaxInfo,
			"max-info",
			flag.NoShortHand,
			"Stop reporting information after this many, 0 for no limit",
			cli.FlagDefault(lint.DefaultMaxDiagnostics),
		),
		cli.Flag(
			&options.ConflictMarkerStyle,
			"conflict-marker-style",
			flag.NoShortHand,
			"Conflict markers to look for, one of git, git-diff3, jj, jj-diff3, jj-snapshot",
			cli.FlagDefault(options.ConflictMarkerStyle),
		),
		cli.Flag(
			&options.Color,
			"color",
			flag.NoShortHand,
			"When to colour the output, one of auto, always, never",
			cli.FlagDefault(options.Color),
		),
		cli.Flag(&options.Config, "config", flag.NoShortHand, "Path to a config file"),
		cli.Flag(&options.Statistics, "statistics", flag.NoShortHand, "Print a table of diagnostic counts"),
		cli.Flag(&options.Watch, "watch", flag.NoShortHand, "Lint again whenever an input changes"),
		cli.Flag(&options.Debug, "debug", flag.NoShortHand, "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			options.Set = explicit(args)
			app := genlint.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())

			return app.Lint(ctx, options)
		}),
	)
}

// explicit returns the long names of the flags present in args, so that values
// from the config file never override one given on the command line.
func explicit(args []string) map[string]bool {
	set := make(map[string]bool)

	for _, arg := range args {
		switch {
		case arg == "--":
			return set
		case strings.HasPrefix(arg, "--"):
			name, _, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
			set[name] = true
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			// -l 80, -l=80 and -sa, anything after a flag taking a value is that value
			for _, short := range strings.TrimPrefix(arg, "-") {
				name, ok := shorthands[short]
				if !ok {
					break
				}

				set[name] = true

				if name != "stdin" && name != "text" {
					break
				}
			}
		}
	}

	return set
}
