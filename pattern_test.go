// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"errors"
	"testing"
)

func TestCompilePatternFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		body  string
		flags PatternFlags
		full  bool
	}{
		{line: "docs", body: "docs"},
		{line: "docs/", body: "docs", flags: PatternDirectory},
		{line: "!docs/", body: "docs", flags: PatternNegated | PatternDirectory},
		{line: "/*", body: "*", flags: PatternHasWild, full: true},
		{line: "!/*/", body: "*", flags: PatternNegated | PatternDirectory | PatternHasWild, full: true},
		{line: "a/b.txt", body: "a/b.txt", full: true},
		{line: `\!important`, body: "!important"},
		{line: `\#hash`, body: "#hash"},
		{line: "file[0-9].txt", body: "file[0-9].txt", flags: PatternHasWild},
		{line: "file[.txt", body: "file[.txt"},
	}

	for _, tt := range tests {
		p, err := compilePattern(tt.line, false)
		if err != nil {
			t.Fatalf("compilePattern(%q): %v", tt.line, err)
		}

		if p.body != tt.body || p.flags != tt.flags || p.fullPath != tt.full {
			t.Fatalf("compilePattern(%q)=body %q flags %b full %v, want body %q flags %b full %v",
				tt.line, p.body, p.flags, p.fullPath, tt.body, tt.flags, tt.full)
		}

		if p.Text() != tt.line {
			t.Fatalf("Text()=%q, want %q", p.Text(), tt.line)
		}
	}
}

func TestCompilePatternRejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"!", "/", "!/", "//"} {
		if _, err := compilePattern(line, false); !errors.Is(err, ErrInvalidPattern) {
			t.Fatalf("compilePattern(%q) err=%v, want ErrInvalidPattern", line, err)
		}
	}
}

func TestCompilePatternIgnoreCase(t *testing.T) {
	t.Parallel()

	p, err := compilePattern("Docs/README.MD", true)
	if err != nil {
		t.Fatalf("compilePattern: %v", err)
	}

	if p.body != "docs/readme.md" || !p.flags.Has(PatternIgnoreCase) {
		t.Fatalf("unexpected pattern: body %q flags %b", p.body, p.flags)
	}

	if p.Text() != "Docs/README.MD" {
		t.Fatalf("Text()=%q must keep source case", p.Text())
	}
}

func TestPatternMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"docs", "docs", true},
		{"docs", "a/docs", true},
		{"docs", "docs2", false},
		{"/docs", "docs", true},
		{"/docs", "a/docs", false},
		{"a/b", "a/b", true},
		{"a/b", "x/a/b", false},
		{"*.md", "README.md", true},
		{"*.md", "docs/README.md", true},
		{"*.md", "README.txt", false},
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"/*", "root.txt", true},
		{"/*", "sub/file.txt", false},
		{"src/*.go", "src/main.go", true},
		{"src/*.go", "src/pkg/main.go", false},
		{"src/**/test", "src/test", true},
		{"src/**/test", "src/a/b/test", true},
		{"src/**/test", "lib/a/test", false},
		{"**/vendor", "vendor", true},
		{"**/vendor", "a/b/vendor", true},
		{"docs/**", "docs/a/b.md", true},
		{"docs/**", "docs", false},
		{"file[0-2].txt", "file1.txt", true},
		{"file[0-2].txt", "file9.txt", false},
		{"file[!0-2].txt", "file9.txt", true},
		{"dir/file[0-2].txt", "dir/file2.txt", true},
		{"a.b", "aXb", false},
	}

	for _, tt := range tests {
		p, err := compilePattern(tt.pattern, false)
		if err != nil {
			t.Fatalf("compilePattern(%q): %v", tt.pattern, err)
		}

		if got := p.matches(tt.candidate, pathBase(tt.candidate)); got != tt.want {
			t.Fatalf("%q matches %q = %v, want %v", tt.pattern, tt.candidate, got, tt.want)
		}
	}
}

func TestMatchSimpleWildcard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"*", "", true},
		{"*", "abc", true},
		{"a*c", "abbbc", true},
		{"a*c", "abbb", false},
		{"*.tar.*", "x.tar.gz", true},
		{"??", "ab", true},
		{"??", "abc", false},
		{"a**b", "axxb", true},
	}

	for _, tt := range tests {
		if got := matchSimpleWildcard(tt.pattern, tt.input); got != tt.want {
			t.Fatalf("matchSimpleWildcard(%q, %q)=%v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

// pathBase returns final path component using slash separator.
func pathBase(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}

	return path
}
