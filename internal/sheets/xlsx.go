package sheets

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadXLSX reads the first worksheet of a downloaded export. The first row is
// the header; excelize trims trailing blank cells, which the record builder
// pads back later.
func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetList[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetList[0])
	}

	columns := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		columns[i] = strings.TrimSpace(c)
	}

	return &Table{Columns: columns, Rows: rows[1:]}, nil
}
