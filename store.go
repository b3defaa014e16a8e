// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// RuleStore is an ordered set of sparse-checkout rules.
//
// Rules keep file order. Lookup scans them in reverse, so a later line
// wins over an earlier one. Parse may be called concurrently; lookups
// must not overlap with Parse on the same store.
type RuleStore struct {
	// patterns are compiled rules in file order.
	patterns []*Pattern
	// mu guards patterns while parsing.
	mu sync.Mutex
	// pruned counts negated rules dropped because they override nothing.
	pruned int
	// skipped counts malformed lines.
	skipped int
	// ignoreCase folds rules and lookup paths to lower ASCII.
	ignoreCase bool
}

// NewRuleStore creates an empty store.
func NewRuleStore(ignoreCase bool) *RuleStore {
	return &RuleStore{ignoreCase: ignoreCase}
}

// ParseRuleStore parses rules from reader into a new store.
func ParseRuleStore(r io.Reader, ignoreCase bool) (*RuleStore, error) {
	s := NewRuleStore(ignoreCase)
	if err := s.Parse(r); err != nil {
		return nil, err
	}

	return s, nil
}

// ParseRuleStoreString parses rules from string input.
func ParseRuleStoreString(src string, ignoreCase bool) (*RuleStore, error) {
	return ParseRuleStore(strings.NewReader(src), ignoreCase)
}

// LoadRuleStore reads and parses a rules file.
func LoadRuleStore(fsys afero.Fs, path string, ignoreCase bool) (*RuleStore, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrRulesFileMissing, err)
		}

		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := ParseRuleStore(f, ignoreCase)
	if err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	return s, nil
}

// Parse appends rules from reader to the store.
//
// Malformed lines are skipped. Negated rules without wildcards that do
// not override any earlier rule are dropped.
func (s *RuleStore) Parse(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return scanRuleLines(r, func(line string) error {
		p, err := compilePattern(line, s.ignoreCase)
		if err != nil {
			if errors.Is(err, ErrInvalidPattern) {
				s.skipped++
				return nil
			}

			return err
		}

		if p.flags.Has(PatternNegated) && !p.flags.Has(PatternHasWild) && !negatesAny(s.patterns, p) {
			s.pruned++
			return nil
		}

		s.patterns = append(s.patterns, p)
		return nil
	})
}

// Len returns number of stored rules.
func (s *RuleStore) Len() int {
	if s == nil {
		return 0
	}

	return len(s.patterns)
}

// Pruned returns number of negated rules dropped while parsing.
func (s *RuleStore) Pruned() int {
	if s == nil {
		return 0
	}

	return s.pruned
}

// Skipped returns number of malformed lines dropped while parsing.
func (s *RuleStore) Skipped() int {
	if s == nil {
		return 0
	}

	return s.skipped
}

// IgnoreCase reports whether store matches case-insensitively.
func (s *RuleStore) IgnoreCase() bool {
	return s != nil && s.ignoreCase
}

// Patterns returns stored rules in file order.
func (s *RuleStore) Patterns() []*Pattern {
	if s == nil {
		return nil
	}

	out := make([]*Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Free drops all stored rules.
func (s *RuleStore) Free() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.patterns)
	s.patterns = nil
}

// negatesAny reports whether negated rule neg can override one of rules.
//
// A literal rule is overridden when its body equals neg body. A wildcard
// rule is overridden when it matches neg body as a path.
func negatesAny(rules []*Pattern, neg *Pattern) bool {
	base := neg.body
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}

	for i := len(rules) - 1; i >= 0; i-- {
		rule := rules[i]
		if rule.flags.Has(PatternNegated) {
			continue
		}

		if !rule.flags.Has(PatternHasWild) {
			if rule.body == neg.body {
				return true
			}

			continue
		}

		if rule.matches(neg.body, base) {
			return true
		}
	}

	return false
}
