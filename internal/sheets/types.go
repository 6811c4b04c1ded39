package sheets

import "fmt"

// Table is one loaded tabular export: an ordered header row and the data rows
// beneath it. Rows may be ragged; missing cells read as blank downstream.
type Table struct {
	Columns []string
	Rows    [][]string
}

type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}
