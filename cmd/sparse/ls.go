// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"

	"github.com/woozymasta/sparse"
)

func cmdLs(ctx context.Context, repo *sparse.Repository, respectGitignore bool, stdout io.Writer) error {
	if repo.Bare() {
		return fmt.Errorf("ls: %w", sparse.ErrNoWorkTree)
	}

	var gi *ignore.GitIgnore
	if respectGitignore {
		gi = loadGitignore(repo.WorkDir())
	}

	files, err := workTreeFiles(repo.Fs(), repo.WorkDir(), gi)
	if err != nil {
		return err
	}

	results, err := repo.CheckPaths(ctx, files)
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Decision == sparse.Checkout {
			_, _ = fmt.Fprintln(stdout, res.Path)
		}
	}

	return nil
}

// workTreeFiles lists regular files under root as slash-separated
// relative paths, skipping .git and paths matched by gi.
func workTreeFiles(fsys afero.Fs, root string, gi *ignore.GitIgnore) ([]string, error) {
	var files []string

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if info.Name() == ".git" || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk work tree: %w", err)
	}

	return files, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
