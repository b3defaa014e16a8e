// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

// Lookup returns checkout decision for one path relative to repository root.
func (s *RuleStore) Lookup(path string, dir DirFlag) Decision {
	return s.Explain(path, dir).Decision
}

// Explain returns checkout decision for one path with the deciding rule.
//
// Decision policy:
// - path is tested at full depth, then as each parent directory
// - per level, rules are scanned from last to first and the first match decides
// - directory-only rules are skipped on levels known not to be directories
// - no match up to the root means no-checkout
func (s *RuleStore) Explain(path string, dir DirFlag) LookupResult {
	res := LookupResult{
		Decision:  NoCheckout,
		RuleIndex: -1,
	}

	if s == nil || len(s.patterns) == 0 {
		return res
	}

	if s.ignoreCase {
		path = asciiLower(path)
	}

	cursor := newLookupPath(path, dir)
	for !cursor.atRoot() {
		if i := s.matchLevel(&cursor); i >= 0 {
			p := s.patterns[i]
			res.Matched = true
			res.RuleIndex = i
			res.Pattern = p.text
			res.Level = cursor.current()
			if !p.flags.Has(PatternNegated) {
				res.Decision = Checkout
			}

			return res
		}

		if !cursor.parent() {
			break
		}
	}

	return res
}

// matchLevel returns index of the highest-precedence rule matching cursor level, -1 when none.
func (s *RuleStore) matchLevel(cursor *lookupPath) int {
	candidate := cursor.current()
	basename := cursor.basename()

	for i := len(s.patterns) - 1; i >= 0; i-- {
		p := s.patterns[i]
		if p.flags.Has(PatternDirectory) && cursor.dir == DirFalse {
			continue
		}

		if p.matches(candidate, basename) {
			return i
		}
	}

	return -1
}
