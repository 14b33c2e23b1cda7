// internal/util/compare.go
package util

import (
	"regexp"
	"strings"
)

var lineEndings = regexp.MustCompile(`\r\n|\r`)

// CompareOutputs reports whether actual and expected match after
// normalization with NormalizeString.
func CompareOutputs(actual, expected string) bool {
	return NormalizeString(actual) == NormalizeString(expected)
}

// NormalizeString unifies line endings, trims every line and drops leading
// and trailing blank lines.
func NormalizeString(s string) string {
	s = lineEndings.ReplaceAllString(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
