package reader

import (
	"fmt"
	"sort"

	"celonis-push/internal/model"
)

const flattenSeparator = "_"

// flattenRecord folds nested objects and arrays into flat column names by
// joining key paths with the separator; array elements are addressed by index.
func flattenRecord(record map[string]interface{}, prefix string, out map[string]interface{}) {
	for key, val := range record {
		name := key
		if prefix != "" {
			name = prefix + flattenSeparator + key
		}
		flattenValue(name, val, out)
	}
}

func flattenValue(name string, val interface{}, out map[string]interface{}) {
	switch v := val.(type) {
	case map[string]interface{}:
		flattenRecord(v, name, out)
	case []interface{}:
		for i, item := range v {
			flattenValue(fmt.Sprintf("%s%s%d", name, flattenSeparator, i), item, out)
		}
	default:
		out[name] = v
	}
}

// tableFromRecords builds a table from flattened records. Columns are the
// sorted union of all keys so the result is deterministic regardless of map
// iteration order; keys missing from a record become nulls.
func tableFromRecords(records []map[string]interface{}) *model.Table {
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			seen[k] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}

	return &model.Table{Columns: columns, Rows: rows}
}
