package recommend

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shaz1409/maturity-auto/internal/utils"
)

const (
	summaryMarker = "SUMMARY:"
	itemsMarker   = "RECOMMENDATIONS:"

	// Filler depends on which branch ran short: a marked reply implies real
	// recommendations precede the padding, a free-text reply does not.
	markedFiller   = "Continue building on the recommendations above."
	unmarkedFiller = "Continue improving in this area."

	minLineRunes = 10
)

var enumPrefix = regexp.MustCompile(`^(?:\d+[.):]\s*|-+\s*)`)

// ParseReply turns a model reply into a Result. It never fails: the marked
// branch honors the requested SUMMARY:/RECOMMENDATIONS: layout, the free-text
// branch salvages whatever lines look substantial, and both pad or clip to
// exactly four items.
func ParseReply(reply string) Result {
	reply = strings.TrimSpace(utils.StripCodeFence(reply))
	if strings.Contains(reply, summaryMarker) {
		return parseMarked(reply)
	}
	return parseUnmarked(reply)
}

func parseMarked(reply string) Result {
	head, tail, _ := strings.Cut(reply, itemsMarker)
	summary := strings.TrimSpace(strings.ReplaceAll(head, summaryMarker, ""))

	var items []string
	for _, line := range strings.Split(tail, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !enumerated(line) {
			continue
		}
		item := strings.TrimSpace(enumPrefix.ReplaceAllString(line, ""))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return finish(summary, items, markedFiller)
}

// parseUnmarked handles replies that ignored the layout instructions: first
// line becomes the summary, every later line longer than ten characters
// becomes a candidate recommendation.
func parseUnmarked(reply string) Result {
	lines := strings.Split(reply, "\n")
	summary := strings.TrimSpace(lines[0])

	var items []string
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > minLineRunes {
			items = append(items, line)
		}
	}
	return finish(summary, items, unmarkedFiller)
}

// enumerated reports whether a line opens like a list entry.
func enumerated(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsDigit(r) || r == '-'
}

func finish(summary string, items []string, filler string) Result {
	if len(items) > ItemCount {
		items = items[:ItemCount]
	}
	for len(items) < ItemCount {
		items = append(items, filler)
	}
	return Result{Summary: utils.Truncate(summary, MaxSummaryLen), Items: items}
}
