// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Enabled reports core.sparseCheckout value. Unset key reads as false.
func (r *Repository) Enabled() (bool, error) {
	if r == nil {
		return false, ErrNilRepository
	}

	v, _, err := r.config.Bool(KeySparseCheckout)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrConfig, KeySparseCheckout, err)
	}

	return v, nil
}

// Init enables sparse-checkout and creates the rules file when absent.
//
// A new rules file is populated with opts.DefaultPatterns or
// DefaultPatterns(). An existing rules file is never modified.
func (r *Repository) Init(opts InitOptions) error {
	if r == nil {
		return ErrNilRepository
	}

	if err := r.setEnabled(true); err != nil {
		return err
	}

	created, err := r.ensureRulesFile()
	if err != nil {
		return err
	}

	if !created {
		r.logger.Debug().Str("path", r.RulesPath()).Msg("rules file exists, keeping content")
		return nil
	}

	patterns := opts.DefaultPatterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	return r.writePatterns(patterns)
}

// Disable sets core.sparseCheckout=false. Rules file is left untouched.
func (r *Repository) Disable() error {
	if r == nil {
		return ErrNilRepository
	}

	return r.setEnabled(false)
}

// List returns raw rules file lines in file order, blank lines omitted.
func (r *Repository) List() ([]string, error) {
	if r == nil {
		return nil, ErrNilRepository
	}

	data, err := afero.ReadFile(r.fs, r.RulesPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrRulesFileMissing, err)
		}

		return nil, fmt.Errorf("read rules file: %w", err)
	}

	return splitPatternLines(string(data)), nil
}

// Set replaces rules file content with patterns.
//
// Sparse-checkout is initialized first when disabled. The file is
// truncated before writing, so a failed write may leave it empty.
func (r *Repository) Set(patterns []string) error {
	if r == nil {
		return ErrNilRepository
	}

	if err := validatePatternLines(patterns); err != nil {
		return err
	}

	enabled, err := r.Enabled()
	if err != nil {
		return err
	}

	if !enabled {
		if err := r.Init(InitOptions{}); err != nil {
			return err
		}
	}

	return r.writePatterns(patterns)
}

// Add appends patterns after existing rules, giving them the highest precedence.
// Returns ErrNotEnabled when sparse-checkout is disabled.
func (r *Repository) Add(patterns []string) error {
	if r == nil {
		return ErrNilRepository
	}

	if err := validatePatternLines(patterns); err != nil {
		return err
	}

	enabled, err := r.Enabled()
	if err != nil {
		return err
	}

	if !enabled {
		return ErrNotEnabled
	}

	existing, err := r.List()
	if err != nil && !errors.Is(err, ErrRulesFileMissing) {
		return err
	}

	return r.writePatterns(mergePatterns(existing, patterns))
}

// setEnabled writes core.sparseCheckout.
func (r *Repository) setEnabled(v bool) error {
	if err := r.config.SetBool(KeySparseCheckout, v); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrConfig, KeySparseCheckout, err)
	}

	r.logger.Debug().Bool("enabled", v).Msg("sparse-checkout flag updated")
	return nil
}

// ensureRulesFile creates an empty rules file when absent and reports whether it did.
func (r *Repository) ensureRulesFile() (bool, error) {
	path := r.RulesPath()

	_, err := r.fs.Stat(path)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat rules file: %w", err)
	}

	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create info dir: %w", err)
	}

	f, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}

		return false, fmt.Errorf("create rules file: %w", err)
	}

	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close rules file: %w", err)
	}

	r.logger.Debug().Str("path", path).Msg("created rules file")
	return true, nil
}

// writePatterns truncates rules file and writes patterns joined by "\n".
// No file lock is taken.
func (r *Repository) writePatterns(patterns []string) error {
	path := r.RulesPath()
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create info dir: %w", err)
	}

	f, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("truncate rules file: %w", err)
	}

	_, werr := f.WriteString(strings.Join(patterns, "\n"))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write rules file: %w", werr)
	}

	if cerr != nil {
		return fmt.Errorf("close rules file: %w", cerr)
	}

	r.logger.Debug().Int("patterns", len(patterns)).Msg("wrote rules file")
	return nil
}

// validatePatternLines checks every pattern with validatePatternLine.
func validatePatternLines(patterns []string) error {
	for i, p := range patterns {
		if err := validatePatternLine(p); err != nil {
			return fmt.Errorf("pattern %d: %w", i, err)
		}
	}

	return nil
}
