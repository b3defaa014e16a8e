// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one compiled sparse-checkout rule.
//
// A Pattern is immutable once compiled.
type Pattern struct {
	// re matches patterns with "**" or char-classes.
	re *regexp.Regexp
	// text is source line as written in the rules file.
	text string
	// body is pattern without "!", leading "/" and trailing "/".
	body string
	// segments match full path patterns with simple wildcards only.
	segments []segmentPattern
	// component matches basename patterns with simple wildcards only.
	component segmentPattern
	// flags are polarity and scope bits.
	flags PatternFlags
	// fullPath means body is matched against the whole path from root,
	// otherwise only against the basename.
	fullPath bool
}

// segmentPattern is precompiled path segment matcher.
type segmentPattern struct {
	// text is raw segment pattern source.
	text string
	// wildcard reports whether text contains "*" or "?".
	wildcard bool
}

// Text returns source line of the rule.
func (p *Pattern) Text() string {
	return p.text
}

// Flags returns rule flags.
func (p *Pattern) Flags() PatternFlags {
	return p.flags
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return p.text
}

// compilePattern compiles one cleaned rules line.
func compilePattern(line string, ignoreCase bool) (*Pattern, error) {
	p := &Pattern{text: line}

	body := line
	if strings.HasPrefix(body, "!") {
		p.flags |= PatternNegated
		body = body[1:]
	} else if strings.HasPrefix(body, `\!`) || strings.HasPrefix(body, `\#`) {
		body = body[1:]
	}

	if strings.HasSuffix(body, "/") {
		p.flags |= PatternDirectory
		body = strings.TrimRight(body, "/")
	}

	if strings.HasPrefix(body, "/") {
		p.fullPath = true
		body = strings.TrimLeft(body, "/")
	}

	if body == "" {
		return nil, fmt.Errorf("%w: empty after normalization (%q)", ErrInvalidPattern, line)
	}

	// Any inner slash anchors the rule to the root like in gitignore.
	if strings.Contains(body, "/") {
		p.fullPath = true
	}

	if ignoreCase {
		p.flags |= PatternIgnoreCase
		body = asciiLower(body)
	}

	p.body = body
	if !patternHasGlobMeta(body) {
		return p, nil
	}

	p.flags |= PatternHasWild
	hasCharClass := patternHasCharClass(body)

	switch {
	case !p.fullPath && !hasCharClass:
		p.component = newSegmentPattern(body)
		return p, nil
	case p.fullPath && !hasCharClass && !strings.Contains(body, "**"):
		p.segments = compilePathSegments(body)
		return p, nil
	}

	src := "^" + globToRegexComponent(body) + "$"
	if p.fullPath {
		src = "^" + globToRegexPath(body) + "$"
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", ErrInvalidPattern, line, err)
	}

	p.re = re
	return p, nil
}

// matches reports whether rule matches one lookup level.
//
// candidate is the level path relative to root and basename is its last
// component; both must already be case-folded for ignore-case rules.
// Negation and directory scope are evaluated by caller.
func (p *Pattern) matches(candidate string, basename string) bool {
	subject := basename
	if p.fullPath {
		subject = candidate
	}

	if subject == "" {
		return false
	}

	switch {
	case p.re != nil:
		return p.re.MatchString(subject)
	case len(p.segments) > 0:
		return matchPathSegments(p.segments, subject)
	case p.component.wildcard:
		return matchSimpleWildcard(p.component.text, subject)
	default:
		return subject == p.body
	}
}

// patternHasGlobMeta reports whether pattern contains supported glob meta.
func patternHasGlobMeta(pattern string) bool {
	if strings.ContainsAny(pattern, "*?") {
		return true
	}

	return patternHasCharClass(pattern)
}

// patternHasCharClass reports whether pattern contains at least one valid "[...]" class.
func patternHasCharClass(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '[' && findCharClassEnd(pattern, i) >= 0 {
			return true
		}
	}

	return false
}

// newSegmentPattern precompiles one segment pattern.
func newSegmentPattern(pattern string) segmentPattern {
	return segmentPattern{
		text:     pattern,
		wildcard: strings.ContainsAny(pattern, "*?"),
	}
}

// compilePathSegments precompiles slash-separated path pattern segments.
func compilePathSegments(pattern string) []segmentPattern {
	parts := strings.Split(pattern, "/")
	segments := make([]segmentPattern, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, newSegmentPattern(part))
	}

	return segments
}

// matchPathSegments matches every candidate segment against pattern segments
// starting from root.
func matchPathSegments(pattern []segmentPattern, candidate string) bool {
	rest := candidate
	for i, seg := range pattern {
		part, tail, found := strings.Cut(rest, "/")
		if part == "" {
			return false
		}

		if seg.wildcard {
			if !matchSimpleWildcard(seg.text, part) {
				return false
			}
		} else if part != seg.text {
			return false
		}

		if i == len(pattern)-1 {
			return !found
		}

		if !found {
			return false
		}

		rest = tail
	}

	return false
}

// matchSimpleWildcard matches "*" and "?" wildcard pattern against one segment.
func matchSimpleWildcard(pattern string, input string) bool {
	pIdx := 0
	sIdx := 0
	starPattern := -1
	starInput := 0

	for sIdx < len(input) {
		if pIdx < len(pattern) && (pattern[pIdx] == '?' || pattern[pIdx] == input[sIdx]) {
			pIdx++
			sIdx++
			continue
		}

		if pIdx < len(pattern) && pattern[pIdx] == '*' {
			starPattern = pIdx
			pIdx++
			starInput = sIdx
			continue
		}

		if starPattern >= 0 {
			// Backtrack: let the last '*' swallow one more byte.
			pIdx = starPattern + 1
			starInput++
			sIdx = starInput
			continue
		}

		return false
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// globToRegexComponent converts a basename pattern to regex body.
func globToRegexComponent(pat string) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		if next, ok := appendCharClassRegex(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '*':
			for i+1 < len(pat) && pat[i+1] == '*' {
				i++
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	return b.String()
}

// globToRegexPath converts a root-anchored path pattern to regex body.
func globToRegexPath(pat string) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		// "**/" matches zero or more directories.
		if strings.HasPrefix(pat[i:], "**/") {
			b.WriteString(`(?:.*/)?`)
			i += 2
			continue
		}

		if next, ok := appendCharClassRegex(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '*':
			if i+1 < len(pat) && pat[i+1] == '*' {
				b.WriteString(`.*`)
				i++
				continue
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	return b.String()
}

// appendCharClassRegex appends a glob char class (`[...]`) as regex class.
func appendCharClassRegex(pat string, start int, b *strings.Builder) (int, bool) {
	end := findCharClassEnd(pat, start)
	if end < 0 {
		return start, false
	}

	b.WriteByte('[')

	idx := start + 1
	switch {
	case idx < end && pat[idx] == '!':
		b.WriteByte('^')
		idx++
	case idx < end && pat[idx] == '^':
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		b.WriteString(`\]`)
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' || pat[idx] == '[' {
			b.WriteByte('\\')
		}

		b.WriteByte(pat[idx])
	}

	b.WriteByte(']')
	return end, true
}

// findCharClassEnd locates closing bracket for a glob char class, -1 when unterminated.
func findCharClassEnd(pat string, start int) int {
	if start < 0 || start >= len(pat) || pat[start] != '[' {
		return -1
	}

	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}

	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}

	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}

	return -1
}
