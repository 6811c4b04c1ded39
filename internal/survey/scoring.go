package survey

import (
	"strconv"
	"strings"
)

const (
	// MinScore and MaxScore bound the valid response range; anything outside
	// is dropped from averages as if unanswered.
	MinScore = 1.0
	MaxScore = 4.0
)

// CategoryScore is the averaged maturity score of one category for one
// respondent. Value is nil when no response in the category produced a valid
// in-range number.
type CategoryScore struct {
	Category string
	Value    *float64
}

// QuestionScore pairs one answered question with its numeric response. Label
// is the original column text, which is what reads well in a prompt.
type QuestionScore struct {
	Key   string
	Label string
	Value float64
}

// ParseResponse coerces a raw cell to a number. Blank and non-numeric cells
// report ok=false.
func ParseResponse(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ScoreRespondent computes one CategoryScore per category, in schema order.
// Non-numeric, missing and out-of-range responses are silently excluded; a
// category where nothing survives gets a nil Value.
func ScoreRespondent(r Respondent, cm *CategoryMap, mapping *ColumnMapping) []CategoryScore {
	scores := make([]CategoryScore, 0, len(cm.Order()))
	for _, category := range cm.Order() {
		scores = append(scores, CategoryScore{
			Category: category,
			Value:    scoreCategory(r, cm.Questions(category), mapping),
		})
	}
	return scores
}

func scoreCategory(r Respondent, keys []string, mapping *ColumnMapping) *float64 {
	var sum float64
	var n int

	for _, key := range keys {
		original, ok := mapping.Original(key)
		if !ok {
			continue
		}
		value, ok := ParseResponse(r.Responses[original])
		if !ok || value < MinScore || value > MaxScore {
			continue
		}
		sum += value
		n++
	}

	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// QuestionScores collects the answered (numeric) questions of one category in
// question order. No range filter here: an out-of-range answer still counts
// as answered for prompt context even though scoring ignored it.
func QuestionScores(r Respondent, keys []string, mapping *ColumnMapping) []QuestionScore {
	answered := make([]QuestionScore, 0, len(keys))
	for _, key := range keys {
		original, ok := mapping.Original(key)
		if !ok {
			continue
		}
		value, ok := ParseResponse(r.Responses[original])
		if !ok {
			continue
		}
		answered = append(answered, QuestionScore{Key: key, Label: original, Value: value})
	}
	return answered
}
