// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

// sparse manages sparse-checkout rules of a git repository and reports
// which paths they check out.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/woozymasta/sparse"
	"github.com/woozymasta/sparse/internal/settings"
)

var version = "dev"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet(settings.AppName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)

	configPath := fs.StringP("config", "c", "", "settings file (default: sparse.yaml in . or user config dir)")
	fs.StringP("repo", "C", settings.Defaults.Repo, "repository path, work tree or bare git directory")
	fs.String("log-level", settings.Defaults.LogLevel, "log level: debug, info, warn, error")
	fs.IntP("workers", "j", settings.Defaults.Workers, "concurrent path checks, 0 uses all CPUs")
	fs.Bool("respect-gitignore", settings.Defaults.RespectGitignore, "skip .gitignore'd paths in ls")
	showVersion := fs.BoolP("version", "V", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sparse [options] <command> [args]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  init [pattern...]     enable sparse-checkout, create rules file when absent\n")
		fmt.Fprintf(stderr, "  list                  print rules\n")
		fmt.Fprintf(stderr, "  set [pattern...]      replace rules\n")
		fmt.Fprintf(stderr, "  add [pattern...]      append rules (--ext, --exclude-ext)\n")
		fmt.Fprintf(stderr, "  disable               disable sparse-checkout, keep rules file\n")
		fmt.Fprintf(stderr, "  check [-v] <path...>  print checkout decision per path\n")
		fmt.Fprintf(stderr, "  ls                    print work tree files that are checked out\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		_, _ = fmt.Fprintf(stdout, "sparse %s\n", version)
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	s, err := settings.Load(fs, *configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, s.LogLevel)
	if err != nil {
		return err
	}

	repo, err := sparse.Open(s.Repo, sparse.Options{
		Logger:  &logger,
		Workers: s.Workers,
	})
	if err != nil {
		return err
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "init":
		return repo.Init(sparse.InitOptions{DefaultPatterns: cmdArgs})
	case "list":
		return cmdList(repo, stdout)
	case "set":
		return repo.Set(cmdArgs)
	case "add":
		return cmdAdd(repo, cmdArgs, stderr)
	case "disable":
		return repo.Disable()
	case "check":
		return cmdCheck(ctx, repo, cmdArgs, stdout, stderr)
	case "ls":
		return cmdLs(ctx, repo, s.RespectGitignore, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// newLogger builds a console logger for the CLI.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func cmdList(repo *sparse.Repository, stdout io.Writer) error {
	patterns, err := repo.List()
	if err != nil {
		return err
	}

	for _, p := range patterns {
		_, _ = fmt.Fprintln(stdout, p)
	}

	return nil
}

func cmdAdd(repo *sparse.Repository, args []string, stderr io.Writer) error {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	exts := fs.StringSlice("ext", nil, "check out files with these extensions")
	excludeExts := fs.StringSlice("exclude-ext", nil, "skip files with these extensions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	patterns := append([]string{}, fs.Args()...)
	patterns = append(patterns, sparse.ExtensionPatterns(*exts, false)...)
	patterns = append(patterns, sparse.ExtensionPatterns(*excludeExts, true)...)
	if len(patterns) == 0 {
		return fmt.Errorf("add: no patterns given")
	}

	return repo.Add(patterns)
}

func cmdCheck(ctx context.Context, repo *sparse.Repository, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.BoolP("verbose", "v", false, "print deciding rule")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("check: no paths given")
	}

	if *verbose {
		for _, path := range fs.Args() {
			res, err := repo.ExplainPath(path)
			if err != nil {
				return err
			}

			rule := "-"
			if res.Matched {
				rule = fmt.Sprintf("%d:%s@%s", res.RuleIndex+1, res.Pattern, res.Level)
			}

			_, _ = fmt.Fprintf(stdout, "%s\t%s\t%s\n", res.Decision, rule, path)
		}

		return nil
	}

	results, err := repo.CheckPaths(ctx, fs.Args())
	if err != nil {
		return err
	}

	for _, res := range results {
		_, _ = fmt.Fprintf(stdout, "%s\t%s\n", res.Decision, res.Path)
	}

	return nil
}
