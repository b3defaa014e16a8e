// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

// Package gitconfig reads and writes boolean keys of a git config file.
//
// Reads go through an INI parser. Writes edit only the line of the
// target key and keep every other byte of the file as it was.
package gitconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// Sentinel errors for gitconfig operations.
var (
	// ErrInvalidKey indicates key without "section.name" form.
	ErrInvalidKey = errors.New("invalid config key")
	// ErrInvalidValue indicates value that is not a git boolean.
	ErrInvalidValue = errors.New("invalid config value")
)

// loadOptions follow git config syntax: case-insensitive section and key
// names, valueless keys meaning true. Repeated keys resolve to the last
// value as git does.
var loadOptions = ini.LoadOptions{
	InsensitiveSections: true,
	InsensitiveKeys:     true,
	AllowBooleanKeys:    true,
}

// File is one git config file.
type File struct {
	fs   afero.Fs
	path string
	// mu serializes read-modify-write cycles of this value.
	mu sync.Mutex
}

// New returns config backed by path on fsys.
func New(fsys afero.Fs, path string) *File {
	return &File{fs: fsys, path: path}
}

// Path returns config file path.
func (f *File) Path() string {
	return f.path
}

// Bool returns boolean value of key and whether key is set.
// Missing file or section reads as unset.
func (f *File) Bool(key string) (bool, bool, error) {
	section, name, err := splitKey(key)
	if err != nil {
		return false, false, err
	}

	f.mu.Lock()
	data, err := f.read()
	f.mu.Unlock()
	if err != nil {
		return false, false, err
	}

	cfg, err := f.parse(data)
	if err != nil {
		return false, false, err
	}

	sec, err := cfg.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return false, false, nil
	}

	raw := sec.Key(name).String()
	v, err := parseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}

	return v, true, nil
}

// SetBool writes boolean value of key, creating file and section when needed.
//
// Only the last line defining key is rewritten, or one line is inserted.
// Repeated keys, comments and formatting elsewhere are left untouched.
func (f *File) SetBool(key string, value bool) error {
	section, name, err := splitKey(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}

	// Refuse to edit a file git itself could not read.
	if _, err := f.parse(data); err != nil {
		return err
	}

	out := setKeyLine(string(data), section, name, strconv.FormatBool(value))

	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := afero.WriteFile(f.fs, f.path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// read returns raw config file content, missing file yields nil.
func (f *File) read() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	return data, nil
}

// parse decodes raw config content.
func (f *File) parse(data []byte) (*ini.File, error) {
	if len(data) == 0 {
		return ini.Empty(loadOptions), nil
	}

	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", f.path, err)
	}

	return cfg, nil
}

// setKeyLine sets name=value in section of git config text.
//
// The last definition of name in the last matching section is replaced,
// keeping its indentation and key spelling. Without a definition the key
// is appended to the last matching section, and without a section a new
// one is appended to the end of text.
func setKeyLine(text, section, name, value string) string {
	newline := "\n"
	if strings.Contains(text, "\r\n") {
		newline = "\r\n"
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	inSection := false
	keyStart, keyEnd := -1, -1
	sectionEnd := -1

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if strings.HasPrefix(trimmed, "[") {
			inSection = sectionHeaderMatches(trimmed, section)
			if inSection {
				sectionEnd = i + 1
			}
			continue
		}

		if !inSection || trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		start := i
		for continuesLine(lines[i]) && i+1 < len(lines) {
			i++
		}
		sectionEnd = i + 1

		if strings.EqualFold(keyName(trimmed), name) {
			keyStart, keyEnd = start, i+1
		}
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(section) + len(name) + len(value) + 16)

	switch {
	case keyStart >= 0:
		old := lines[keyStart]
		indent := old[:len(old)-len(strings.TrimLeft(old, " \t"))]
		spelled := keyName(strings.TrimSpace(old))

		eol := newline
		if keyEnd == len(lines) && !strings.HasSuffix(lines[keyEnd-1], "\n") {
			eol = ""
		}

		writeLines(&sb, lines[:keyStart])
		sb.WriteString(indent + spelled + " = " + value + eol)
		writeLines(&sb, lines[keyEnd:])

	case sectionEnd >= 0:
		writeLines(&sb, lines[:sectionEnd])
		if !strings.HasSuffix(lines[sectionEnd-1], "\n") {
			sb.WriteString(newline)
		}
		sb.WriteString("\t" + name + " = " + value + newline)
		writeLines(&sb, lines[sectionEnd:])

	default:
		sb.WriteString(text)
		if text != "" && !strings.HasSuffix(text, "\n") {
			sb.WriteString(newline)
		}
		sb.WriteString("[" + section + "]" + newline)
		sb.WriteString("\t" + name + " = " + value + newline)
	}

	return sb.String()
}

// sectionHeaderMatches reports whether header line opens section.
// Subsection headers such as [remote "origin"] never match a plain section.
func sectionHeaderMatches(header, section string) bool {
	end := strings.IndexByte(header, ']')
	if end < 0 {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(header[1:end]), section)
}

// keyName returns leading variable name of a trimmed key line.
func keyName(line string) string {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '-' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}

		return line[:i]
	}

	return line
}

// continuesLine reports whether value on line continues on the next one.
func continuesLine(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t\r\n"), `\`)
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, line := range lines {
		sb.WriteString(line)
	}
}

// splitKey splits "section.name" key. Names keep caller spelling; lookups
// compare them case-insensitively.
func splitKey(key string) (string, string, error) {
	i := strings.LastIndexByte(key, '.')
	if i <= 0 || i == len(key)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return key[:i], key[i+1:], nil
}

// parseBool parses git boolean spelling. An empty value is false; a
// valueless key reaches here as "true".
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}

	return false, ErrInvalidValue
}
