package recommend

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shaz1409/maturity-auto/internal/survey"
)

// SystemPrompt frames every completion request.
const SystemPrompt = "You are an expert CRM marketing consultant providing actionable recommendations."

const (
	lowScoreCutoff = 2.0
	lowScoreLimit  = 3
)

// BuildPrompt renders the user prompt for one category. Questions are listed
// weakest first (ties keep their survey order), and up to three scores at or
// below the cutoff are repeated in a dedicated attention block so the model
// anchors its advice on them.
func BuildPrompt(category string, score float64, questions []survey.QuestionScore) string {
	sorted := make([]survey.QuestionScore, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	var low []survey.QuestionScore
	for _, q := range sorted {
		if q.Value <= lowScoreCutoff {
			low = append(low, q)
		}
	}
	if len(low) > lowScoreLimit {
		low = low[:lowScoreLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Overall maturity score: %.2f/4.0 (%s)\n\n", score, BandFor(score))

	b.WriteString("Survey responses in this category, weakest first:\n")
	for _, q := range sorted {
		fmt.Fprintf(&b, "- %s: %s/4\n", q.Label, formatScore(q.Value))
	}

	if len(low) > 0 {
		b.WriteString("\nAreas that need the most attention:\n")
		for _, q := range low {
			fmt.Fprintf(&b, "- %s: %s/4\n", q.Label, formatScore(q.Value))
		}
	}

	b.WriteString("\nWrite a 2-3 sentence summary of the current maturity in this category, ")
	b.WriteString("then exactly 4 specific, actionable recommendations ordered by impact. ")
	b.WriteString("Focus on the weakest areas first.\n\n")
	b.WriteString("Format the response as:\n")
	b.WriteString("SUMMARY: <summary>\n")
	b.WriteString("RECOMMENDATIONS:\n")
	b.WriteString("1. <recommendation>\n")
	b.WriteString("2. <recommendation>\n")
	b.WriteString("3. <recommendation>\n")
	b.WriteString("4. <recommendation>\n")
	return b.String()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
