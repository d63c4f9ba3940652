package reader

import (
	"fmt"
	"reflect"

	"github.com/xitongsys/parquet-go/reader"

	"celonis-push/internal/model"
)

// readParquet reads a flat Parquet file. The schema comes from the file
// footer, so column names and order match the source exactly; optional
// columns decode to nulls when absent.
func readParquet(path string) (*model.Table, error) {
	pf, err := openLocalParquet(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	defer pf.Close()

	pr, err := reader.NewParquetReader(pf, nil, 1)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	defer pr.ReadStop()

	// Infos[0] is the schema root; the remaining entries are the columns of a
	// flat file, in source order. ExName is the column name in the file,
	// InName the generated Go field name.
	infos := pr.SchemaHandler.Infos
	if len(infos) < 2 {
		return nil, &FileReadError{Path: path, Cause: fmt.Errorf("file has no columns")}
	}

	columns := make([]string, 0, len(infos)-1)
	fields := make([]string, 0, len(infos)-1)
	for _, info := range infos[1:] {
		columns = append(columns, info.ExName)
		fields = append(fields, info.InName)
	}

	num := int(pr.GetNumRows())
	rows := make([][]interface{}, 0, num)
	for len(rows) < num {
		vals, err := pr.ReadByNumber(num - len(rows))
		if err != nil {
			return nil, &FileReadError{Path: path, Cause: err}
		}
		if len(vals) == 0 {
			break
		}
		for _, val := range vals {
			rows = append(rows, structToRow(val, fields))
		}
	}

	return &model.Table{Columns: columns, Rows: rows}, nil
}

// structToRow extracts the column values from one decoded record, keeping
// native Go types so inference can tell integers from decimals. Optional
// columns are pointers; nil stays a null cell.
func structToRow(record interface{}, fields []string) []interface{} {
	rv := reflect.ValueOf(record)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	row := make([]interface{}, len(fields))
	for i, name := range fields {
		fv := rv.FieldByName(name)
		if !fv.IsValid() {
			continue
		}
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		row[i] = fv.Interface()
	}
	return row
}
