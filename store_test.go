// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

func TestParseRuleStore(t *testing.T) {
	t.Parallel()

	s, err := ParseRuleStoreString("# comment\r\n"+
		"/*\r\n"+
		"\n"+
		"   \n"+
		"docs/\n"+
		`\#literal`+"\n"+
		`name\ `+"\n"+
		"trailing   \n", false)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	want := []string{"/*", "docs/", `\#literal`, "name ", "trailing"}
	got := patternTexts(s)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("patterns=%q, want %q", got, want)
	}

	if s.Pruned() != 0 || s.Skipped() != 0 {
		t.Fatalf("pruned=%d skipped=%d, want 0/0", s.Pruned(), s.Skipped())
	}
}

func TestParseRuleStoreSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	s, err := ParseRuleStoreString("!\n/\n!/\nkeep\n", false)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	if s.Len() != 1 || s.Skipped() != 3 {
		t.Fatalf("len=%d skipped=%d, want 1/3", s.Len(), s.Skipped())
	}
}

func TestParseRuleStoreNegationPruning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		want   []string
		pruned int
	}{
		{
			name:   "orphan literal negation dropped",
			src:    "!keep.md\n",
			want:   []string{},
			pruned: 1,
		},
		{
			name:   "negation of different literal dropped",
			src:    "docs/\n!docs/keep.md\n",
			want:   []string{"docs/"},
			pruned: 1,
		},
		{
			name: "negation of same literal kept",
			src:  "docs/\n!docs/\n",
			want: []string{"docs/", "!docs/"},
		},
		{
			name: "negation matched by earlier wildcard kept",
			src:  "*.md\n!README.md\n",
			want: []string{"*.md", "!README.md"},
		},
		{
			name:   "negation before its target dropped",
			src:    "!README.md\n*.md\n",
			want:   []string{"*.md"},
			pruned: 1,
		},
		{
			name:   "negation of negation dropped",
			src:    "!*.md\n!README.md\n",
			want:   []string{"!*.md"},
			pruned: 1,
		},
		{
			name: "wildcard negation always kept",
			src:  "!*.tmp\n",
			want: []string{"!*.tmp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := ParseRuleStoreString(tt.src, false)
			if err != nil {
				t.Fatalf("ParseRuleStoreString: %v", err)
			}

			got := patternTexts(s)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("patterns=%q, want %q", got, tt.want)
			}

			if s.Pruned() != tt.pruned {
				t.Fatalf("pruned=%d, want %d", s.Pruned(), tt.pruned)
			}
		})
	}
}

func TestParseRuleStoreNegationPruningIgnoreCase(t *testing.T) {
	t.Parallel()

	s, err := ParseRuleStoreString("Docs/\n!docs/\n", true)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("len=%d, want 2 with case-folded negation kept", s.Len())
	}

	s, err = ParseRuleStoreString("Docs/\n!docs/\n", false)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("len=%d, want 1 with case-sensitive negation pruned", s.Len())
	}
}

func TestRuleStoreConcurrentParse(t *testing.T) {
	t.Parallel()

	s := NewRuleStore(false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Parse(strings.NewReader("a\nb\nc\n")); err != nil {
				t.Errorf("Parse: %v", err)
			}
		}()
	}
	wg.Wait()

	if s.Len() != 48 {
		t.Fatalf("len=%d, want 48", s.Len())
	}
}

func TestLoadRuleStore(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/rules", []byte("/*\n!/*/\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := LoadRuleStore(fsys, "/rules", false)
	if err != nil {
		t.Fatalf("LoadRuleStore: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("len=%d, want 2", s.Len())
	}

	_, err = LoadRuleStore(fsys, "/missing", false)
	if !errors.Is(err, ErrRulesFileMissing) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err=%v, want ErrRulesFileMissing and fs.ErrNotExist", err)
	}
}

func TestRuleStoreFree(t *testing.T) {
	t.Parallel()

	s, err := ParseRuleStoreString("/*\n", false)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	s.Free()
	if s.Len() != 0 {
		t.Fatalf("len=%d after Free, want 0", s.Len())
	}

	if got := s.Lookup("root.txt", DirFalse); got != NoCheckout {
		t.Fatalf("Lookup after Free=%v, want no-checkout", got)
	}

	var nilStore *RuleStore
	nilStore.Free()
	if nilStore.Len() != 0 || nilStore.Patterns() != nil {
		t.Fatalf("nil store must be empty")
	}
}

func patternTexts(s *RuleStore) []string {
	out := make([]string, 0, s.Len())
	for _, p := range s.Patterns() {
		out = append(out, p.Text())
	}

	return out
}

func TestParseRuleStoreLongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 70000)
	s, err := ParseRuleStoreString("/*\n"+long+"\n!/*/\n", false)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("len=%d, want 3", s.Len())
	}

	if got := s.Lookup("dir/"+long, DirFalse); got != Checkout {
		t.Fatalf("Lookup(long)=%v, want checkout", got)
	}

	if got := s.Lookup("dir/other", DirFalse); got != NoCheckout {
		t.Fatalf("Lookup(dir/other)=%v, want no-checkout", got)
	}
}

func TestParseRuleStoreKeepsLeadingWhitespace(t *testing.T) {
	t.Parallel()

	s, err := ParseRuleStoreString("  foo\n\tbar\n", false)
	if err != nil {
		t.Fatalf("ParseRuleStoreString: %v", err)
	}

	got := patternTexts(s)
	if strings.Join(got, "|") != "  foo|\tbar" {
		t.Fatalf("patterns=%q, want leading whitespace kept", got)
	}

	tests := map[string]Decision{
		"foo":   NoCheckout,
		"  foo": Checkout,
		"bar":   NoCheckout,
		"\tbar": Checkout,
	}

	for path, want := range tests {
		if got := s.Lookup(path, DirFalse); got != want {
			t.Fatalf("Lookup(%q)=%v, want %v", path, got, want)
		}
	}
}
