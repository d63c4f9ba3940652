package schema

import (
	"fmt"
	"strings"

	"celonis-push/internal/model"
)

// CreateTableSQL renders the CREATE TABLE IF NOT EXISTS statement for the
// pool. Column order follows the inferred columns, which follow the source
// file; every uploaded chunk uses the same order.
func CreateTableSQL(tableName string, columns []model.Column) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%q %s", col.Name, col.Type)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (\n  %s\n);", tableName, strings.Join(parts, ", "))
}
