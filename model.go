// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

// Decision is the outcome of a sparse-checkout lookup.
type Decision uint8

const (
	// NoCheckout means path is skipped in the working tree.
	NoCheckout Decision = iota
	// Checkout means path is materialized in the working tree.
	Checkout
)

// String returns the decision name.
func (d Decision) String() string {
	if d == Checkout {
		return "checkout"
	}

	return "no-checkout"
}

// DirFlag tells the lookup whether the tested path is a directory.
type DirFlag uint8

const (
	// DirUnknown means the caller does not know the path kind.
	DirUnknown DirFlag = iota
	// DirFalse means the path is not a directory.
	DirFalse
	// DirTrue means the path is a directory.
	DirTrue
)

// PatternFlags is a bit set of pattern properties.
type PatternFlags uint8

const (
	// PatternNegated marks a "!" rule.
	PatternNegated PatternFlags = 1 << iota
	// PatternDirectory marks a rule with trailing "/".
	PatternDirectory
	// PatternHasWild marks a rule with "*", "?" or "[...]".
	PatternHasWild
	// PatternIgnoreCase marks a rule compiled for ASCII case-insensitive matching.
	PatternIgnoreCase
)

// Has reports whether all bits of f are set.
func (p PatternFlags) Has(f PatternFlags) bool {
	return p&f == f
}

// LookupResult is a detailed decision produced by RuleStore.Explain.
type LookupResult struct {
	// Pattern is the text of the deciding rule, empty when no rule matched.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Level is the path prefix the deciding rule matched, empty when no rule matched.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// RuleIndex is the deciding rule index in store order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
	// Decision reports final checkout decision.
	Decision Decision `json:"decision" yaml:"decision"`
	// Matched reports whether any rule matched.
	Matched bool `json:"matched" yaml:"matched"`
}

// PathDecision is one result of Repository.CheckPaths.
type PathDecision struct {
	// Path is the input path as given by caller.
	Path string `json:"path" yaml:"path"`
	// Decision reports final checkout decision.
	Decision Decision `json:"decision" yaml:"decision"`
}

// InitOptions controls Repository.Init.
type InitOptions struct {
	// DefaultPatterns populate a newly created rules file.
	// Empty value uses DefaultPatterns().
	DefaultPatterns []string `json:"default_patterns,omitempty" yaml:"default_patterns,omitempty"`
}

// DefaultPatterns returns the rules written by Init into a new rules file:
// every file in the root directory and no subdirectory.
func DefaultPatterns() []string {
	return []string{"/*", "!/*/"}
}
