package genlint

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"go.followtheprocess.codes/genlint/internal/config"
	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/format"
	"go.followtheprocess.codes/genlint/internal/lint"
	"go.followtheprocess.codes/log"
)

// Lint implements genlint: it lints stdin or every file named by the inputs, renders what was
// found and writes a summary.
//
// Diagnostics never cause an error, only invalid options or a failure to produce output do.
func (a App) Lint(ctx context.Context, options Options) error {
	logger := a.logger.Prefixed("lint")
	logger.Debug("Starting genlint", slog.String("version", a.version))

	options.normalise()

	cfg, err := loadConfig(options.Config)
	if err != nil {
		return err
	}

	if cfg.Path != "" {
		logger.Debug("Loaded config file", slog.String("path", cfg.Path))
	}

	options.apply(cfg)

	lintOptions, err := options.resolve()
	if err != nil {
		return err
	}

	logger.Debug("Lint configuration", slog.String("options", fmt.Sprintf("%+v", lintOptions)))

	renderer, err := format.Get(options.Format, a.colour(options))
	if err != nil {
		return err
	}

	if options.Watch {
		return a.watch(ctx, logger, options, lintOptions, renderer)
	}

	_, err = a.run(ctx, logger, options, lintOptions, renderer)

	return err
}

// loadConfig loads the config file at path, or the default one if path is empty.
//
// Only an explicitly named config file has to exist.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, err := config.Load(config.DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, nil
	}

	return cfg, err
}

// run does a single complete lint of the sources in options with a fresh [lint.Runner],
// returning the files it linted.
func (a App) run(
	ctx context.Context,
	logger *log.Logger,
	options Options,
	lintOptions lint.Options,
	renderer format.Renderer,
) ([]string, error) {
	start := time.Now()
	runner := lint.NewRunner(a.stderr, lintOptions)

	var files []string

	if options.Stdin {
		a.report(logger, Stdin, lint.Lint(Stdin, a.stdin, runner, lintOptions))
	} else {
		var err error

		files, err = a.expand(ctx, logger, options.Inputs, options.Exclude)
		if err != nil {
			return nil, err
		}

		logger.Debug("Linting files", slog.Int("count", len(files)))

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if !a.lintFile(logger, file, runner, lintOptions) {
				break
			}
		}
	}

	diagnostics := runner.Diagnostics()
	for _, d := range diagnostics {
		logger.Debug("Found diagnostic", slog.String("diagnostic", d.String()))
	}

	if err := a.render(options.Output, renderer, diagnostics); err != nil {
		return nil, err
	}

	summary(a.stderr, runner)

	if options.Statistics {
		statistics(a.stderr, diagnostics)
	}

	logger.Debug(
		"Lint finished",
		slog.Int("files", len(files)),
		slog.Int("diagnostics", len(diagnostics)),
		slog.Duration("took", time.Since(start)),
	)

	return files, nil
}

// lintFile lints a single file, returning false if the run must stop.
func (a App) lintFile(logger *log.Logger, path string, runner *lint.Runner, options lint.Options) bool {
	file, err := os.Open(path)
	if err != nil {
		logger.Error("Could not open file", slog.String("file", path), slog.String("error", err.Error()))
		return true
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	reader := bufio.NewReaderSize(file, lint.BufferSize(size))

	return a.report(logger, path, lint.Lint(path, reader, runner, options))
}

// report logs the outcome of linting a single source, returning false if the run must stop.
func (a App) report(logger *log.Logger, name string, err error) bool {
	switch {
	case err == nil:
		logger.Debug("Linted source", slog.String("file", name))
		return true
	case errors.Is(err, lint.ErrBinary):
		logger.Info("Skipping binary file", slog.String("file", name))
		return true
	case errors.Is(err, lint.ErrAborted):
		logger.Debug("Error limit reached", slog.String("file", name))
		return false
	default:
		logger.Error("Could not lint file", slog.String("file", name), slog.String("error", err.Error()))
		return true
	}
}

// render writes the diagnostics to the output file, or stdout if there isn't one.
func (a App) render(output string, renderer format.Renderer, diagnostics []diagnostic.Diagnostic) error {
	if output == "" {
		return renderer.Render(a.stdout, diagnostics)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}

	if err := renderer.Render(file, diagnostics); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close output file: %w", err)
	}

	return nil
}

// summary writes the final diagnostic counts to w.
func summary(w io.Writer, runner *lint.Runner) {
	note := func(severity diagnostic.Severity) string {
		if runner.LimitReached(severity) {
			return " (limit reached)"
		}

		return ""
	}

	fmt.Fprintf(
		w,
		"\nFound %d errors%s, %d warnings%s, %d information%s\n",
		runner.Count(diagnostic.Error),
		note(diagnostic.Error),
		runner.Count(diagnostic.Warning),
		note(diagnostic.Warning),
		runner.Count(diagnostic.Information),
		note(diagnostic.Information),
	)
}
