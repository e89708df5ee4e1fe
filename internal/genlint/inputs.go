package genlint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/log"
	"golang.org/x/sync/errgroup"
)

// expand turns the --input values into the list of files to lint.
//
// Each input is a directory (linted recursively, skipping hidden directories), a glob
// pattern or the path of a single file. Inputs are expanded concurrently but the result
// keeps the order they were given in, a file named by more than one input is only
// linted once, and anything matching one of the exclude patterns is dropped.
func (a App) expand(ctx context.Context, logger *log.Logger, inputs, exclude []string) ([]string, error) {
	results := make([][]string, len(inputs))

	group, ctx := errgroup.WithContext(ctx)

	for i, input := range inputs {
		group.Go(func() error {
			paths, err := expandInput(ctx, input)
			if err != nil {
				return err
			}

			results[i] = paths

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	var files []string

	for i, paths := range results {
		logger.Debug("Expanded input", slog.String("input", inputs[i]), slog.Int("files", len(paths)))

		for _, path := range paths {
			if seen[path] {
				continue
			}

			seen[path] = true

			if excluded(path, exclude) {
				logger.Debug("Excluding file", slog.String("file", path))
				continue
			}

			files = append(files, path)
		}
	}

	return files, nil
}

// expandInput expands a single input into the files it names.
func expandInput(ctx context.Context, input string) ([]string, error) {
	info, err := os.Stat(input)
	if err == nil {
		if info.IsDir() {
			return walk(ctx, input)
		}

		return []string{input}, nil
	}

	if !isGlob(input) {
		// Let the lint fail to open it so it's reported like any other unreadable file
		return []string{input}, nil
	}

	matches, err := filepath.Glob(input)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", input, err)
	}

	var files []string

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, fmt.Errorf("could not get path info: %w", err)
		}

		if !info.IsDir() {
			files = append(files, match)
			continue
		}

		found, err := walk(ctx, match)
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	return files, nil
}

// walk returns every regular file under root, in lexical order, skipping
// hidden directories.
func walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}

	return files, nil
}

// excluded reports whether path matches any of the exclude patterns, either in
// full or by its base name.
func excluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}

		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}

	return false
}

// isGlob reports whether input contains any glob meta characters.
func isGlob(input string) bool {
	return strings.ContainsAny(input, `*?[`)
}
