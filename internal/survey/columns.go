package survey

// ColumnMapping holds the original<->normalized column lookups for one
// dataset. Two distinct labels may normalize onto the same key; the reverse
// lookup is last-write-wins and the mapping counts how often that happened so
// the run can report it.
type ColumnMapping struct {
	originalToKey map[string]string
	keyToOriginal map[string]string
	questionKeys  []string
	collisions    int
}

// MapColumns normalizes every raw column label in order. Question keys keep
// dataset order with the two reserved metadata columns excluded.
func MapColumns(columns []string, schema *Schema) *ColumnMapping {
	m := &ColumnMapping{
		originalToKey: make(map[string]string, len(columns)),
		keyToOriginal: make(map[string]string, len(columns)),
	}

	for _, col := range columns {
		key := NormalizeColumn(col)
		m.originalToKey[col] = key
		if prev, exists := m.keyToOriginal[key]; exists && prev != col {
			m.collisions++
		}
		m.keyToOriginal[key] = col

		if !schema.IsMetadata(col) {
			m.questionKeys = append(m.questionKeys, key)
		}
	}

	return m
}

// Key returns the normalized key for a raw column label.
func (m *ColumnMapping) Key(original string) (string, bool) {
	key, ok := m.originalToKey[original]
	return key, ok
}

// Original returns the raw column label last mapped onto the normalized key.
func (m *ColumnMapping) Original(key string) (string, bool) {
	original, ok := m.keyToOriginal[key]
	return original, ok
}

// QuestionKeys returns the ordered normalized keys of the non-metadata
// columns.
func (m *ColumnMapping) QuestionKeys() []string {
	return m.questionKeys
}

// Collisions reports how many distinct labels were overwritten in the reverse
// lookup by a later label with the same normalized key.
func (m *ColumnMapping) Collisions() int {
	return m.collisions
}
