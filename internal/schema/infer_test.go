package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celonis-push/internal/model"
)

func tableWithColumn(values ...interface{}) *model.Table {
	t := &model.Table{Columns: []string{"value"}}
	for _, v := range values {
		t.Rows = append(t.Rows, []interface{}{v})
	}
	return t
}

func TestInferWidening(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   model.ColumnType
	}{
		{"all ints", []interface{}{1, 2, 3}, model.TypeInt},
		{"ints and decimals", []interface{}{1, 2.5, 3}, model.TypeFloat},
		{"mixed with string", []interface{}{1, "x", 3}, model.TypeVarchar},
		{"all null", []interface{}{nil, nil, nil}, model.TypeVarchar},
		{"bools", []interface{}{true, false}, model.TypeBoolean},
		{"native times", []interface{}{time.Now(), time.Now()}, model.TypeTimestamp},
		{"numeric strings", []interface{}{"1", "2"}, model.TypeInt},
		{"decimal strings", []interface{}{"1", "2.5"}, model.TypeFloat},
		{"bool strings", []interface{}{"true", "FALSE"}, model.TypeBoolean},
		{"date strings", []interface{}{"2024-01-01", "2024-06-30"}, model.TypeTimestamp},
		{"datetime strings", []interface{}{"2024-01-01 10:00:00"}, model.TypeTimestamp},
		{"rfc3339 strings", []interface{}{"2024-01-01T10:00:00Z"}, model.TypeTimestamp},
		{"plain strings", []interface{}{"a", "b"}, model.TypeVarchar},
		{"nulls ignored", []interface{}{nil, 2, nil}, model.TypeInt},
		{"whole json numbers", []interface{}{float64(1), float64(2)}, model.TypeInt},
		{"json decimals", []interface{}{float64(1), 2.5}, model.TypeFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := Infer(tableWithColumn(tt.values...))
			require.Len(t, columns, 1)
			assert.Equal(t, tt.want, columns[0].Type)
		})
	}
}

func TestInferDeterministic(t *testing.T) {
	table := &model.Table{
		Columns: []string{"id", "amount", "note"},
		Rows: [][]interface{}{
			{1, 9.5, "a"},
			{2, nil, nil},
			{3, 1.25, "b"},
		},
	}

	first := Infer(table)
	second := Infer(table)
	assert.Equal(t, first, second)
}

func TestInferKeepsColumnOrder(t *testing.T) {
	table := &model.Table{
		Columns: []string{"z", "a", "m"},
		Rows:    [][]interface{}{{1, "x", true}},
	}

	columns := Infer(table)
	require.Len(t, columns, 3)
	assert.Equal(t, "z", columns[0].Name)
	assert.Equal(t, "a", columns[1].Name)
	assert.Equal(t, "m", columns[2].Name)
}

func TestCreateTableSQL(t *testing.T) {
	columns := []model.Column{
		{Name: "id", Type: model.TypeInt},
		{Name: "amount", Type: model.TypeFloat},
		{Name: "note", Type: model.TypeVarchar},
	}

	sql := CreateTableSQL("orders", columns)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS \"orders\" (\n  \"id\" INT, \"amount\" FLOAT, \"note\" VARCHAR(2000)\n);", sql)
}
