// Package survey turns a raw tabular export into normalized question keys,
// fixed category groupings and per-category maturity scores.
package survey

import (
	"regexp"
	"strings"
)

var (
	droppedChars   = regexp.MustCompile(`[^a-z0-9\s_]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// NormalizeColumn maps a raw column label to its stable key: lower-case,
// hyphens become spaces, everything outside [a-z0-9 _] is dropped, whitespace
// runs collapse and the tokens are joined with underscores. Keeping the
// underscore in the preserved set makes the function idempotent, so already
// normalized keys pass through unchanged.
func NormalizeColumn(label string) string {
	cleaned := strings.ToLower(label)
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	cleaned = droppedChars.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	return strings.ReplaceAll(cleaned, " ", "_")
}
