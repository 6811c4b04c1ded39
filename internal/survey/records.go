package survey

// Respondent is one survey row: a unique identity, the submission timestamp
// and the raw responses keyed by original column label. Immutable once built.
type Respondent struct {
	Identity  string
	Timestamp string
	Responses map[string]string
}

// BuildRespondents converts raw rows into respondent records. Rows with a
// blank identity are dropped, and when the same identity appears twice the
// first row wins; the second return value counts the rows dropped either way.
func BuildRespondents(columns []string, rows [][]string, schema *Schema) ([]Respondent, int) {
	tsIdx, idIdx := -1, -1
	for i, col := range columns {
		switch col {
		case schema.TimestampColumn:
			tsIdx = i
		case schema.IdentityColumn:
			idIdx = i
		}
	}

	respondents := make([]Respondent, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	dropped := 0

	for _, row := range rows {
		identity := cell(row, idIdx)
		if identity == "" || seen[identity] {
			dropped++
			continue
		}
		seen[identity] = true

		responses := make(map[string]string, len(columns))
		for i, col := range columns {
			if schema.IsMetadata(col) {
				continue
			}
			responses[col] = cell(row, i)
		}

		respondents = append(respondents, Respondent{
			Identity:  identity,
			Timestamp: cell(row, tsIdx),
			Responses: responses,
		})
	}

	return respondents, dropped
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
