// Package schema derives the pool table definition for an in-memory table:
// a widest-safe SQL type per column and the CREATE TABLE statement built from
// it. Everything here is pure and deterministic.
package schema

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"celonis-push/internal/model"
)

// valueKind is the per-value classification used during widening
type valueKind int

const (
	kindNull valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindTime
	kindString
)

// Infer maps every column to the widest type that safely represents all of
// its non-null values. An entirely-null column defaults to the string type.
func Infer(t *model.Table) []model.Column {
	columns := make([]model.Column, len(t.Columns))
	for i, name := range t.Columns {
		kind := kindNull
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			kind = widen(kind, classify(row[i]))
			if kind == kindString {
				break
			}
		}
		columns[i] = model.Column{Name: name, Type: sqlType(kind)}
	}
	return columns
}

// widen merges two value kinds into the narrowest kind covering both
func widen(a, b valueKind) valueKind {
	if a == b || b == kindNull {
		return a
	}
	if a == kindNull {
		return b
	}
	if (a == kindInt && b == kindFloat) || (a == kindFloat && b == kindInt) {
		return kindFloat
	}
	return kindString
}

func classify(v interface{}) valueKind {
	switch val := v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kindInt
	case float32:
		return classifyFloat(float64(val))
	case float64:
		return classifyFloat(val)
	case time.Time:
		return kindTime
	case []byte:
		return classifyString(string(val))
	case string:
		return classifyString(val)
	default:
		return classifyString(cast.ToString(val))
	}
}

// classifyFloat keeps whole-numbered decimals as integers. JSON decoding
// yields float64 for every number, so without this an all-integer JSON
// column would never infer as INT.
func classifyFloat(f float64) valueKind {
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return kindInt
	}
	return kindFloat
}

// timeLayouts are the date-like string shapes recognized during inference
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func classifyString(s string) valueKind {
	s = strings.TrimSpace(s)
	if s == "" {
		return kindNull
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return kindInt
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return kindFloat
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return kindBool
	}
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return kindTime
		}
	}
	return kindString
}

func sqlType(kind valueKind) model.ColumnType {
	switch kind {
	case kindInt:
		return model.TypeInt
	case kindFloat:
		return model.TypeFloat
	case kindBool:
		return model.TypeBoolean
	case kindTime:
		return model.TypeTimestamp
	default:
		return model.TypeVarchar
	}
}
