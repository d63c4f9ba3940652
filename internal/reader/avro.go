package reader

import (
	"bufio"
	"fmt"
	"os"

	"github.com/linkedin/goavro/v2"

	"celonis-push/internal/model"
)

// readAvro reads an Avro object container file. Records are flattened like
// JSON objects; nullable union values are unwrapped to their branch value.
func readAvro(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	defer f.Close()

	ocf, err := goavro.NewOCFReader(bufio.NewReader(f))
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	var records []map[string]interface{}
	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, &FileReadError{Path: path, Cause: err}
		}

		obj, ok := datum.(map[string]interface{})
		if !ok {
			return nil, &FileReadError{Path: path, Cause: fmt.Errorf("datum is not a record")}
		}

		flat := make(map[string]interface{})
		flattenRecord(unwrapUnions(obj), "", flat)
		records = append(records, flat)
	}
	if err := ocf.Err(); err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	return tableFromRecords(records), nil
}

// avroPrimitives are the union branch names goavro uses as map keys when
// decoding nullable fields.
var avroPrimitives = map[string]bool{
	"boolean": true, "int": true, "long": true, "float": true,
	"double": true, "bytes": true, "string": true,
}

func unwrapUnions(record map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(record))
	for key, val := range record {
		if branch, ok := val.(map[string]interface{}); ok && len(branch) == 1 {
			for name, inner := range branch {
				if avroPrimitives[name] {
					val = inner
				}
			}
		}
		if nested, ok := val.(map[string]interface{}); ok {
			val = unwrapUnions(nested)
		}
		out[key] = val
	}
	return out
}
