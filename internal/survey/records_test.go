package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRespondents(t *testing.T) {
	schema := DefaultSchema()
	columns := []string{"Timestamp", "Email Address", "Q1", "Q2"}
	rows := [][]string{
		{"2024-05-01 10:00:00", "one@example.com", "3", "2"},
		{"2024-05-01 11:00:00", "two@example.com", "1", ""},
	}

	respondents, dropped := BuildRespondents(columns, rows, schema)
	require.Len(t, respondents, 2)
	assert.Equal(t, 0, dropped)

	assert.Equal(t, "one@example.com", respondents[0].Identity)
	assert.Equal(t, "2024-05-01 10:00:00", respondents[0].Timestamp)
	assert.Equal(t, map[string]string{"Q1": "3", "Q2": "2"}, respondents[0].Responses)
	assert.Equal(t, map[string]string{"Q1": "1", "Q2": ""}, respondents[1].Responses)
}

func TestBuildRespondentsDuplicateIdentityFirstWins(t *testing.T) {
	schema := DefaultSchema()
	columns := []string{"Timestamp", "Email Address", "Q1"}
	rows := [][]string{
		{"t1", "dup@example.com", "1"},
		{"t2", "dup@example.com", "4"},
	}

	respondents, dropped := BuildRespondents(columns, rows, schema)
	require.Len(t, respondents, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "1", respondents[0].Responses["Q1"])
}

func TestBuildRespondentsBlankIdentityDropped(t *testing.T) {
	schema := DefaultSchema()
	columns := []string{"Timestamp", "Email Address", "Q1"}
	rows := [][]string{
		{"t1", "", "1"},
		{"t2", "ok@example.com", "2"},
	}

	respondents, dropped := BuildRespondents(columns, rows, schema)
	require.Len(t, respondents, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "ok@example.com", respondents[0].Identity)
}

func TestBuildRespondentsShortRowPadsBlank(t *testing.T) {
	schema := DefaultSchema()
	columns := []string{"Timestamp", "Email Address", "Q1", "Q2"}
	rows := [][]string{
		{"t1", "short@example.com", "3"},
	}

	respondents, _ := BuildRespondents(columns, rows, schema)
	require.Len(t, respondents, 1)
	assert.Equal(t, "", respondents[0].Responses["Q2"])
}
