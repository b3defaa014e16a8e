// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// scanRuleLines calls fn for every meaningful line of a rules file.
//
// Semantics:
// - "\n" and "\r\n" line endings are accepted, lines have no length limit
// - blank lines and "#" comments are skipped
// - leading whitespace is part of the pattern
// - trailing spaces are trimmed unless escaped by "\"
// - "\#" and "\!" keep leading "#" and "!" literal (resolved at compile time)
func scanRuleLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)

	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			if line, ok := cleanRuleLine(strings.TrimSuffix(raw, "\n")); ok {
				if ferr := fn(line); ferr != nil {
					return ferr
				}
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read rules: %w", err)
		}
	}
}

// cleanRuleLine trims one raw line and reports whether it carries a rule.
func cleanRuleLine(raw string) (string, bool) {
	line := strings.TrimSuffix(raw, "\r")
	line = trimTrailingSpaces(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}

	return line, true
}

// splitPatternLines splits raw rules file content into non-empty lines
// without any other interpretation.
func splitPatternLines(data string) []string {
	lines := strings.Split(data, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		out = append(out, line)
	}

	return out
}

// validatePatternLine rejects values that cannot be stored as one file line.
func validatePatternLine(line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%w: line break in %q", ErrInvalidPattern, line)
	}

	return nil
}

// trimTrailingSpaces removes trailing spaces unless escaped by "\".
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			s = s[:len(s)-2] + s[len(s)-1:]
			break
		}

		s = s[:len(s)-1]
	}

	return s
}
