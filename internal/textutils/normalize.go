// Package textutils provides text normalization helpers shared by the
// extraction heuristics.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize collapses every whitespace run (including newlines) into a single
// space, trims the ends and lowercases the result. Normalizing an already
// normalized string returns it unchanged.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " ")))
}
