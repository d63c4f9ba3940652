// Package reader parses local data files into in-memory tables. Each format
// has its own reader; dispatch is a pure function of the file extension.
// Tabular formats keep the source column order; semi-structured formats
// (JSON, XML, Avro) are flattened into rows and columns first.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"celonis-push/internal/model"
)

// Read parses one file into a table. The table name is the file base name
// without its extension, sanitized for use in pool SQL.
func Read(path string) (*model.Table, error) {
	format := model.FormatForExtension(filepath.Ext(path))
	if format == model.FormatUnknown {
		return nil, &UnsupportedFormatError{Path: path, Ext: filepath.Ext(path)}
	}

	var (
		table *model.Table
		err   error
	)
	switch format {
	case model.FormatCSV:
		table, err = readCSV(path)
	case model.FormatExcel:
		table, err = readExcel(path)
	case model.FormatParquet:
		table, err = readParquet(path)
	case model.FormatJSON:
		table, err = readJSON(path)
	case model.FormatXML:
		table, err = readXML(path)
	case model.FormatAvro:
		table, err = readAvro(path)
	}
	if err != nil {
		return nil, err
	}

	if table.NumRows() == 0 {
		return nil, &EmptyDataError{Path: path}
	}

	table.Name = tableName(path)
	table.Format = format
	for i, col := range table.Columns {
		table.Columns[i] = model.SanitizeName(col)
	}

	return table, nil
}

// Resolve expands a path into the list of source files to process. A file
// path yields itself; a directory yields every regular file with a supported
// extension, non-recursive, sorted by name. An empty directory result is an
// error so a misconfigured path is not silently a no-op.
func Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if model.FormatForExtension(filepath.Ext(entry.Name())) == model.FormatUnknown {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no supported files found in %s", path)
	}

	return files, nil
}

func tableName(path string) string {
	base := filepath.Base(path)
	return model.SanitizeName(strings.TrimSuffix(base, filepath.Ext(base)))
}
