// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"
)

// CheckPath returns checkout decision for path relative to work tree root.
//
// Every path is checked out while sparse-checkout is disabled.
//
// A trailing "/" marks path as directory. Without it, bare repositories
// treat path as a file, while repositories with a work tree stat path on
// disk: an existing directory is matched as a directory, anything else
// as a file. The same path may therefore get a different decision once
// it is created or removed in the work tree.
func (r *Repository) CheckPath(path string) (Decision, error) {
	res, err := r.ExplainPath(path)
	return res.Decision, err
}

// ExplainPath is CheckPath that also reports the deciding rule.
func (r *Repository) ExplainPath(path string) (LookupResult, error) {
	res := LookupResult{Decision: Checkout, RuleIndex: -1}
	if r == nil {
		return res, ErrNilRepository
	}

	enabled, err := r.Enabled()
	if err != nil {
		return res, err
	}

	if !enabled {
		return res, nil
	}

	store, err := r.LoadRules()
	if err != nil {
		return res, err
	}
	defer store.Free()

	return store.Explain(path, r.dirHint(path)), nil
}

// CheckPaths returns checkout decisions for paths in input order.
//
// Rules are loaded once and paths are evaluated concurrently.
func (r *Repository) CheckPaths(ctx context.Context, paths []string) ([]PathDecision, error) {
	if r == nil {
		return nil, ErrNilRepository
	}

	results := make([]PathDecision, len(paths))
	for i, path := range paths {
		results[i] = PathDecision{Path: path, Decision: Checkout}
	}

	enabled, err := r.Enabled()
	if err != nil {
		return nil, err
	}

	if !enabled || len(paths) == 0 {
		return results, nil
	}

	store, err := r.LoadRules()
	if err != nil {
		return nil, err
	}
	defer store.Free()

	p := pool.New().WithMaxGoroutines(r.workers).WithContext(ctx)
	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i].Decision = store.Lookup(path, r.dirHint(path))
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// dirHint picks lookup directory flag for caller path.
//
// Trailing separator means directory. Bare repositories have nothing to
// stat, so paths are treated as files. Otherwise the work tree decides,
// and a missing path is treated as a file.
func (r *Repository) dirHint(path string) DirFlag {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return DirTrue
	}

	if r.bare || r.workDir == "" {
		return DirFalse
	}

	normalized, _ := normalizePath(path)
	if normalized == "" {
		return DirTrue
	}

	fi, err := r.fs.Stat(filepath.Join(r.workDir, filepath.FromSlash(normalized)))
	if err != nil || !fi.IsDir() {
		return DirFalse
	}

	return DirTrue
}
