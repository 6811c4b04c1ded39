package recommend

// MaxSummaryLen bounds the summary in characters; longer summaries are
// clipped, never rejected.
const MaxSummaryLen = 200

// ItemCount is the fixed number of recommendations in every result.
const ItemCount = 4

// Result is the fixed-shape outcome of one generation round: a short summary
// and exactly four ordered recommendations. Parsing pads or truncates to keep
// that invariant, and the failure path substitutes fixed text, so callers
// never see a partial result.
type Result struct {
	Summary string
	Items   []string
}

// Band is the qualitative maturity label derived from a category score.
type Band string

const (
	BandNotMature  Band = "not mature"
	BandDeveloping Band = "developing"
	BandMature     Band = "mature"
	BandVeryMature Band = "very mature"
)

// BandFor classifies a score into its maturity band. Thresholds are inclusive
// on the low side: 1.5 is still "not mature", 2.5 still "developing".
func BandFor(score float64) Band {
	switch {
	case score <= 1.5:
		return BandNotMature
	case score <= 2.5:
		return BandDeveloping
	case score <= 3.5:
		return BandMature
	default:
		return BandVeryMature
	}
}

// Completer is the one external call allowed to fail: a text-generation
// service taking a system and user prompt and returning free text.
type Completer interface {
	Complete(systemPrompt, userPrompt string) (string, error)
}
