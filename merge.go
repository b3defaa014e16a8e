// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

// mergePatterns concatenates pattern lists preserving input order.
func mergePatterns(sets ...[]string) []string {
	total := 0
	for _, set := range sets {
		total += len(set)
	}

	out := make([]string, 0, total)
	for _, set := range sets {
		out = append(out, set...)
	}

	return out
}
