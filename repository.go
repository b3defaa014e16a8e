// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/woozymasta/sparse/gitconfig"
)

const (
	dotGitDirName  = ".git"
	configFileName = "config"
	infoDirName    = "info"
	rulesFileName  = "sparse-checkout"
)

// Options configures Repository.
type Options struct {
	// Fs is filesystem holding git directory and work tree.
	// Nil value uses the OS filesystem.
	Fs afero.Fs
	// Config is repository configuration.
	// Nil value uses <gitdir>/config on Fs.
	Config Config
	// Logger receives debug events. Nil value disables logging.
	Logger *zerolog.Logger
	// Workers bounds CheckPaths concurrency. Zero uses GOMAXPROCS.
	Workers int
}

// Repository binds sparse-checkout rules and flag of one git repository.
type Repository struct {
	fs     afero.Fs
	config Config
	logger zerolog.Logger
	// gitDir holds config and info/sparse-checkout.
	gitDir string
	// workDir is work tree root, empty for bare repositories.
	workDir string
	workers int
	bare    bool
}

// Open opens repository at path.
//
// Path is either a work tree containing ".git" directory or a bare git
// directory containing "config" file.
func Open(path string, opts Options) (*Repository, error) {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}

	dotGit := filepath.Join(absPath, dotGitDirName)
	if fi, err := fsys.Stat(dotGit); err == nil && fi.IsDir() {
		opts.Fs = fsys
		return NewRepository(dotGit, absPath, opts)
	}

	if fi, err := fsys.Stat(filepath.Join(absPath, configFileName)); err == nil && !fi.IsDir() {
		opts.Fs = fsys
		return NewRepository(absPath, "", opts)
	}

	return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
}

// NewRepository creates repository from explicit layout.
// Empty workDir makes the repository bare; core.bare=true does the same.
func NewRepository(gitDir string, workDir string, opts Options) (*Repository, error) {
	if gitDir == "" {
		return nil, fmt.Errorf("%w: empty git directory", ErrNotRepository)
	}

	r := &Repository{
		fs:      opts.Fs,
		config:  opts.Config,
		logger:  zerolog.Nop(),
		gitDir:  gitDir,
		workDir: workDir,
		workers: opts.Workers,
	}

	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}

	if r.config == nil {
		r.config = gitconfig.New(r.fs, filepath.Join(gitDir, configFileName))
	}

	if opts.Logger != nil {
		r.logger = opts.Logger.With().Str("gitdir", gitDir).Logger()
	}

	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}

	bare, found, err := r.config.Bool(KeyBare)
	if err != nil {
		r.logger.Debug().Err(err).Msg("core.bare lookup failed")
	}

	r.bare = workDir == "" || (found && bare)
	if r.bare {
		r.workDir = ""
	}

	return r, nil
}

// GitDir returns git directory path.
func (r *Repository) GitDir() string {
	return r.gitDir
}

// WorkDir returns work tree root, empty for bare repositories.
func (r *Repository) WorkDir() string {
	return r.workDir
}

// Bare reports whether repository has no work tree.
func (r *Repository) Bare() bool {
	return r.bare
}

// Fs returns repository filesystem.
func (r *Repository) Fs() afero.Fs {
	return r.fs
}

// RulesPath returns path of info/sparse-checkout file.
func (r *Repository) RulesPath() string {
	return filepath.Join(r.gitDir, infoDirName, rulesFileName)
}

// LoadRules loads sparse-checkout rules of repository, creating an empty
// rules file when it is absent.
func (r *Repository) LoadRules() (*RuleStore, error) {
	if r == nil {
		return nil, ErrNilRepository
	}

	if _, err := r.ensureRulesFile(); err != nil {
		return nil, err
	}

	store, err := LoadRuleStore(r.fs, r.RulesPath(), r.ignoreCase())
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("patterns", store.Len()).
		Int("pruned", store.Pruned()).
		Int("skipped", store.Skipped()).
		Bool("ignore_case", store.IgnoreCase()).
		Msg("loaded sparse-checkout rules")

	return store, nil
}

// ignoreCase reads core.ignoreCase, failures read as false.
func (r *Repository) ignoreCase() bool {
	v, _, err := r.config.Bool(KeyIgnoreCase)
	if err != nil {
		r.logger.Debug().Err(err).Msg("core.ignoreCase lookup failed, matching case-sensitively")
		return false
	}

	return v
}
