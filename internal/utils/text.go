package utils

import "strings"

// Truncate clips s to at most maxLength characters (runes, not bytes).
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// StripCodeFence removes a surrounding markdown code fence, if any. Generation
// services sometimes wrap plain-text replies in ``` blocks.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
