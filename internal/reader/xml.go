package reader

import (
	"fmt"
	"os"
	"sort"

	"github.com/clbanning/mxj"

	"celonis-push/internal/model"
)

// readXML decodes an XML document into a map and locates the record list:
// the first repeated element under the root. A document with a single record
// element yields a one-row table. Records are flattened like JSON objects.
func readXML(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	doc, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	raw, err := findRecords(map[string]interface{}(doc))
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	records := make([]map[string]interface{}, 0, len(raw))
	for _, obj := range raw {
		flat := make(map[string]interface{})
		flattenRecord(obj, "", flat)
		records = append(records, flat)
	}

	return tableFromRecords(records), nil
}

// findRecords locates the record list in a decoded document: the first
// repeated element, searched depth-first with keys in sorted order so the
// choice is deterministic. Without any repeated element the innermost
// single-element chain is treated as one record.
func findRecords(node map[string]interface{}) ([]map[string]interface{}, error) {
	if list, key, ok := findList(node); ok {
		records := make([]map[string]interface{}, 0, len(list))
		for _, item := range list {
			obj, ok := item.(map[string]interface{})
			if !ok {
				// Repeated scalar elements become single-column records.
				obj = map[string]interface{}{key: item}
			}
			records = append(records, obj)
		}
		return records, nil
	}

	// Single record: unwrap wrapper elements that hold exactly one child map.
	record := node
	for len(record) == 1 {
		var inner map[string]interface{}
		for _, v := range record {
			obj, ok := v.(map[string]interface{})
			if !ok {
				return []map[string]interface{}{record}, nil
			}
			inner = obj
		}
		record = inner
	}
	if len(record) == 0 {
		return nil, fmt.Errorf("no record elements found")
	}
	return []map[string]interface{}{record}, nil
}

func findList(node map[string]interface{}) ([]interface{}, string, bool) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := node[key].(type) {
		case []interface{}:
			return v, key, true
		case map[string]interface{}:
			if list, k, ok := findList(v); ok {
				return list, k, ok
			}
		}
	}
	return nil, "", false
}
