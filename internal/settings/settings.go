// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

// Package settings loads sparse CLI settings from defaults, an optional
// settings file, SPARSE_* environment variables and command line flags.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName is used for settings file name, settings directory and env prefix.
const AppName = "sparse"

// Settings stores all CLI settings.
type Settings struct {
	// Repo is repository path, work tree or bare git directory.
	Repo string `mapstructure:"repo"`
	// LogLevel is zerolog level name.
	LogLevel string `mapstructure:"log-level"`
	// Workers bounds concurrent path checks, 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// RespectGitignore skips work tree paths matched by .gitignore in "ls".
	RespectGitignore bool `mapstructure:"respect-gitignore"`
}

// Defaults are applied before file, env and flags.
var Defaults = Settings{
	Repo:             ".",
	LogLevel:         "warn",
	Workers:          0,
	RespectGitignore: true,
}

// Load reads settings. Empty configPath searches "sparse.yaml" in the
// current directory and in the user config directory; a missing file
// there is not an error. Flags bound from fs win over every other source.
func Load(fs *pflag.FlagSet, configPath string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("repo", Defaults.Repo)
	v.SetDefault("log-level", Defaults.LogLevel)
	v.SetDefault("workers", Defaults.Workers)
	v.SetDefault("respect-gitignore", Defaults.RespectGitignore)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	return &s, nil
}
