package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyMarked(t *testing.T) {
	reply := strings.Join([]string{
		"SUMMARY: Solid foundations with gaps in automation.",
		"RECOMMENDATIONS:",
		"1. Adopt a single CRM platform",
		"2. Automate welcome journeys",
		"3. Define a data retention policy",
		"4. Train the team on segmentation",
	}, "\n")

	got := ParseReply(reply)
	assert.Equal(t, "Solid foundations with gaps in automation.", got.Summary)
	require.Len(t, got.Items, 4)
	assert.Equal(t, []string{
		"Adopt a single CRM platform",
		"Automate welcome journeys",
		"Define a data retention policy",
		"Train the team on segmentation",
	}, got.Items)
}

func TestParseReplyMarkedKeepsFirstFourInOrder(t *testing.T) {
	reply := strings.Join([]string{
		"SUMMARY: Too much of everything.",
		"RECOMMENDATIONS:",
		"1. first",
		"2. second",
		"3. third",
		"4. fourth",
		"5. fifth",
		"6. sixth",
	}, "\n")

	got := ParseReply(reply)
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, got.Items)
}

func TestParseReplyMarkedPadsWithFiller(t *testing.T) {
	reply := strings.Join([]string{
		"SUMMARY: Short on ideas.",
		"RECOMMENDATIONS:",
		"1. Only one concrete step",
	}, "\n")

	got := ParseReply(reply)
	require.Len(t, got.Items, 4)
	assert.Equal(t, "Only one concrete step", got.Items[0])
	for _, item := range got.Items[1:] {
		assert.Equal(t, markedFiller, item)
	}
}

func TestParseReplyEnumerationStyles(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"1. Adopt a CRM", "Adopt a CRM"},
		{"2) Automate journeys", "Automate journeys"},
		{"- Clean the database", "Clean the database"},
		{"10. Review monthly", "Review monthly"},
		{"3: Segment by value", "Segment by value"},
		{"1. Use the A.B. method", "Use the A.B. method"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reply := "SUMMARY: s\nRECOMMENDATIONS:\n" + tt.line
			got := ParseReply(reply)
			assert.Equal(t, tt.want, got.Items[0])
		})
	}
}

func TestParseReplyMarkedIgnoresProse(t *testing.T) {
	reply := strings.Join([]string{
		"SUMMARY: Mixed reply.",
		"RECOMMENDATIONS:",
		"Here are my suggestions:",
		"1. Actual recommendation",
		"",
		"Hope this helps!",
	}, "\n")

	got := ParseReply(reply)
	assert.Equal(t, "Actual recommendation", got.Items[0])
	assert.Equal(t, markedFiller, got.Items[1])
}

func TestParseReplyMarkedWithoutItemsMarker(t *testing.T) {
	got := ParseReply("SUMMARY: All talk, no list.")
	assert.Equal(t, "All talk, no list.", got.Summary)
	require.Len(t, got.Items, 4)
	for _, item := range got.Items {
		assert.Equal(t, markedFiller, item)
	}
}

func TestParseReplyUnmarked(t *testing.T) {
	reply := strings.Join([]string{
		"Your data practice is maturing steadily.",
		"Invest in a central customer database.",
		"Automate the most common campaign flows.",
		"Review reporting cadence with stakeholders.",
	}, "\n")

	got := ParseReply(reply)
	assert.Equal(t, "Your data practice is maturing steadily.", got.Summary)
	require.Len(t, got.Items, 4)
	assert.Equal(t, "Invest in a central customer database.", got.Items[0])
	assert.Equal(t, "Automate the most common campaign flows.", got.Items[1])
	assert.Equal(t, "Review reporting cadence with stakeholders.", got.Items[2])
	assert.Equal(t, unmarkedFiller, got.Items[3])
}

func TestParseReplyUnmarkedSkipsShortLines(t *testing.T) {
	reply := strings.Join([]string{
		"Summary line.",
		"ok",
		"",
		"A recommendation long enough to keep.",
	}, "\n")

	got := ParseReply(reply)
	assert.Equal(t, "A recommendation long enough to keep.", got.Items[0])
	assert.Equal(t, unmarkedFiller, got.Items[1])
}

func TestParseReplyEmpty(t *testing.T) {
	got := ParseReply("")
	assert.Equal(t, "", got.Summary)
	require.Len(t, got.Items, 4)
	for _, item := range got.Items {
		assert.Equal(t, unmarkedFiller, item)
	}
}

func TestParseReplyStripsCodeFence(t *testing.T) {
	reply := "```\nSUMMARY: Fenced.\nRECOMMENDATIONS:\n1. Unwrap before parsing\n```"
	got := ParseReply(reply)
	assert.Equal(t, "Fenced.", got.Summary)
	assert.Equal(t, "Unwrap before parsing", got.Items[0])
}

func TestParseReplyTruncatesSummary(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := ParseReply("SUMMARY: " + long + "\nRECOMMENDATIONS:\n1. Keep it brief")
	assert.Len(t, []rune(got.Summary), MaxSummaryLen)
}
