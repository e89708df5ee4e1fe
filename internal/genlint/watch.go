package genlint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.followtheprocess.codes/genlint/internal/format"
	"go.followtheprocess.codes/genlint/internal/lint"
	"go.followtheprocess.codes/log"
)

// debounce is how long to wait after the last change before linting again, editors often
// write a file in several steps.
const debounce = 100 * time.Millisecond

// watch lints once, then again every time something changes in the directories
// containing the inputs, until ctx is cancelled.
//
// Every run starts from a fresh [lint.Runner] so the limits apply per run.
func (a App) watch(
	ctx context.Context,
	logger *log.Logger,
	options Options,
	lintOptions lint.Options,
	renderer format.Renderer,
) error {
	logger = logger.Prefixed("watch")

	files, err := a.run(ctx, logger, options, lintOptions, renderer)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	if err := watchDirs(watcher, watched, options.Inputs, files); err != nil {
		return err
	}

	logger.Info("Watching for changes, press ctrl+c to stop", slog.Int("directories", len(watched)))

	timer := time.NewTimer(debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			// Writing the output must not trigger another run
			if options.Output != "" && filepath.Clean(event.Name) == filepath.Clean(options.Output) {
				continue
			}

			logger.Debug("Change detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error("File watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			files, err = a.run(ctx, logger, options, lintOptions, renderer)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}

				return err
			}

			// New files may have appeared in new directories
			if err := watchDirs(watcher, watched, options.Inputs, files); err != nil {
				return err
			}
		}
	}
}

// watchDirs adds every input directory and the directory of every linted file to
// watcher, unless already in watched.
func watchDirs(watcher *fsnotify.Watcher, watched map[string]bool, inputs, files []string) error {
	dirs := make([]string, 0, len(inputs)+len(files))

	for _, input := range inputs {
		if info, err := os.Stat(input); err == nil && info.IsDir() {
			dirs = append(dirs, input)
		}
	}

	for _, file := range files {
		dirs = append(dirs, filepath.Dir(file))
	}

	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		if watched[dir] {
			continue
		}

		// Inputs that don't exist were already reported by the run
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}

		watched[dir] = true
	}

	return nil
}
