// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"path"
	"strings"
)

// lookupPath is a traversal cursor over one normalized path.
//
// full never changes; parent() only moves the offsets so every level is
// a prefix of full.
type lookupPath struct {
	// full is normalized slash-separated relative path.
	full string
	// end is length of current level prefix.
	end int
	// base is start of current level basename.
	base int
	// dir tells whether current level is a directory.
	dir DirFlag
}

// newLookupPath creates cursor at full path depth.
func newLookupPath(raw string, dir DirFlag) lookupPath {
	normalized, trailingSlash := normalizePath(raw)
	if trailingSlash {
		dir = DirTrue
	}

	return lookupPath{
		full: normalized,
		end:  len(normalized),
		base: strings.LastIndexByte(normalized, '/') + 1,
		dir:  dir,
	}
}

// atRoot reports whether cursor has no path left to match.
func (p *lookupPath) atRoot() bool {
	return p.end == 0
}

// current returns current level path.
func (p *lookupPath) current() string {
	return p.full[:p.end]
}

// basename returns last component of current level path.
func (p *lookupPath) basename() string {
	return p.full[p.base:p.end]
}

// parent moves cursor to parent directory and reports whether a level remains.
func (p *lookupPath) parent() bool {
	if p.base == 0 {
		p.end = 0
		return false
	}

	p.end = p.base - 1
	p.base = strings.LastIndexByte(p.full[:p.end], '/') + 1
	p.dir = DirTrue
	return true
}

// normalizePath normalizes lookup path to slash-separated relative clean form
// and reports whether raw input ended with a separator. Whitespace is part
// of the path.
func normalizePath(raw string) (string, bool) {
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	trailingSlash := strings.HasSuffix(raw, "/")
	raw = strings.TrimPrefix(raw, "./")
	raw = strings.TrimPrefix(raw, "/")
	if raw == "" {
		return "", false
	}

	if isSimpleNormalizedPath(raw) {
		return raw, trailingSlash
	}

	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return "", false
	}

	return raw, trailingSlash
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes unchanged.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}

// isSimpleNormalizedPath reports whether path is already normalized enough to skip path.Clean.
func isSimpleNormalizedPath(path string) bool {
	if path == "" ||
		path == "." ||
		path == ".." ||
		strings.HasPrefix(path, "/") ||
		strings.HasSuffix(path, "/") ||
		strings.HasPrefix(path, "./") ||
		strings.HasPrefix(path, "../") ||
		strings.Contains(path, "//") ||
		strings.Contains(path, "/./") ||
		strings.Contains(path, "/../") ||
		strings.HasSuffix(path, "/..") ||
		strings.HasSuffix(path, "/.") {
		return false
	}

	return true
}
