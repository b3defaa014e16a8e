// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import "strings"

// ExtensionPatterns converts an extension list to checkout patterns.
//
// Accepted forms are "go", ".go" and "*.go". Empty values are skipped.
// With exclude set, patterns are negated ("!*.go").
func ExtensionPatterns(exts []string, exclude bool) []string {
	prefix := "*."
	if exclude {
		prefix = "!*."
	}

	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		if ext == "" {
			continue
		}

		out = append(out, prefix+ext)
	}

	return out
}
