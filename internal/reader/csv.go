package reader

import (
	"encoding/csv"
	"io"
	"os"

	"celonis-push/internal/model"
)

// readCSV parses a comma-separated file. The first record is the header;
// cells stay raw strings, typing happens during schema inference.
func readCSV(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	var rows [][]interface{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FileReadError{Path: path, Cause: err}
		}

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
