package survey

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionKeysN(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("q%02d", i)
	}
	return keys
}

func TestBuildCategoryMapFullSchema(t *testing.T) {
	schema := DefaultSchema()
	keys := questionKeysN(schema.QuestionCount())

	cm := BuildCategoryMap(keys, schema)

	require.Equal(t, []string{
		"Tech & Data",
		"Campaigning & Assets",
		"Segmentation & Personalisation",
		"Reporting & Insights",
		"People & Operations",
	}, cm.Order())

	assert.Equal(t, keys[0:5], cm.Questions("Tech & Data"))
	assert.Equal(t, keys[5:11], cm.Questions("Campaigning & Assets"))
	assert.Equal(t, keys[11:14], cm.Questions("Segmentation & Personalisation"))
	assert.Equal(t, keys[14:20], cm.Questions("Reporting & Insights"))
	assert.Equal(t, keys[20:24], cm.Questions("People & Operations"))

	// Every key belongs to exactly one category.
	for i, key := range keys {
		cat, ok := cm.Category(key)
		require.True(t, ok, "key %d has no category", i)
		assert.Contains(t, cm.Questions(cat), key)
	}
}

func TestBuildCategoryMapShortDataset(t *testing.T) {
	schema := DefaultSchema()
	// Only 13 questions: the third category comes out short, the last two empty.
	keys := questionKeysN(13)

	cm := BuildCategoryMap(keys, schema)

	assert.Len(t, cm.Questions("Tech & Data"), 5)
	assert.Len(t, cm.Questions("Campaigning & Assets"), 6)
	assert.Equal(t, keys[11:13], cm.Questions("Segmentation & Personalisation"))
	assert.Empty(t, cm.Questions("Reporting & Insights"))
	assert.Empty(t, cm.Questions("People & Operations"))
}

func TestBuildCategoryMapEmptyDataset(t *testing.T) {
	schema := DefaultSchema()
	cm := BuildCategoryMap(nil, schema)

	for _, cat := range cm.Order() {
		assert.Empty(t, cm.Questions(cat))
	}
}
