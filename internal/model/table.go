package model

import "strings"

// Format identifies a supported source file format
type Format string

const (
	FormatCSV     Format = "csv"
	FormatExcel   Format = "excel"
	FormatParquet Format = "parquet"
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
	FormatAvro    Format = "avro"

	// FormatUnknown marks an extension outside the supported set
	FormatUnknown Format = "unknown"
)

// FormatForExtension maps a file extension (with or without the leading dot)
// to its Format. The mapping is the closed set of supported formats.
func FormatForExtension(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return FormatCSV
	case "xls", "xlsx":
		return FormatExcel
	case "parquet":
		return FormatParquet
	case "json":
		return FormatJSON
	case "xml":
		return FormatXML
	case "avro":
		return FormatAvro
	default:
		return FormatUnknown
	}
}

// ColumnType is a Celonis pool SQL type keyword
type ColumnType string

const (
	TypeInt       ColumnType = "INT"
	TypeFloat     ColumnType = "FLOAT"
	TypeBoolean   ColumnType = "BOOLEAN"
	TypeTimestamp ColumnType = "TIMESTAMP"
	TypeVarchar   ColumnType = "VARCHAR(2000)"
)

// Column pairs a sanitized column name with its inferred SQL type
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is an in-memory tabular snapshot of one source file. Columns keeps
// the source column order; every row has exactly len(Columns) cells.
type Table struct {
	Name    string
	Format  Format
	Columns []string
	Rows    [][]interface{}
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Chunk is a contiguous slice of a table's rows, the unit of one upload call
type Chunk struct {
	Index int
	Rows  [][]interface{}
}

// Split partitions the table's rows into chunks of at most size rows,
// preserving the original row order.
func (t *Table) Split(size int) []Chunk {
	if size <= 0 || len(t.Rows) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (len(t.Rows)+size-1)/size)
	for start := 0; start < len(t.Rows); start += size {
		end := start + size
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Rows:  t.Rows[start:end],
		})
	}

	return chunks
}

// SanitizeName normalizes a table or column name for use in pool SQL.
// Spaces become underscores, matching the upload naming on the platform side.
func SanitizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
