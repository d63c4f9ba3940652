package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"celonis-push/internal/model"
)

// readExcel parses the first sheet of an xlsx/xls workbook. The first row is
// the header; cells stay strings, typing happens during schema inference.
func readExcel(path string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FileReadError{Path: path, Cause: fmt.Errorf("workbook has no sheets")}
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	if len(records) == 0 {
		return nil, &FileReadError{Path: path, Cause: fmt.Errorf("sheet %s has no header row", sheets[0])}
	}

	header := records[0]
	rows := make([][]interface{}, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]interface{}, len(header))
		for i := range header {
			if i < len(record) && record[i] != "" {
				row[i] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return &model.Table{Columns: header, Rows: rows}, nil
}
