package reader

import (
	"encoding/json"
	"fmt"
	"os"

	"celonis-push/internal/model"
)

// readJSON parses a JSON file holding an array of objects (or a single
// object, treated as one row). Nested structures are flattened before the
// result is treated as a table.
func readJSON(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	var raw []map[string]interface{}
	switch v := parsed.(type) {
	case []interface{}:
		for i, item := range v {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, &FileReadError{Path: path, Cause: fmt.Errorf("array element %d is not an object", i)}
			}
			raw = append(raw, obj)
		}
	case map[string]interface{}:
		raw = append(raw, v)
	default:
		return nil, &FileReadError{Path: path, Cause: fmt.Errorf("top-level value is neither an object nor an array")}
	}

	records := make([]map[string]interface{}, 0, len(raw))
	for _, obj := range raw {
		flat := make(map[string]interface{})
		flattenRecord(obj, "", flat)
		records = append(records, flat)
	}

	return tableFromRecords(records), nil
}
