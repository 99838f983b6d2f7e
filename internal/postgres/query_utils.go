package postgres

import (
	"fmt"
	"strings"
)

// tableColumn qualifies a quoted column with its table, e.g. photos."id".
func tableColumn(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}

func tableColumns(table string, columns []string) []string {
	cs := make([]string, 0, len(columns))
	for _, c := range columns {
		cs = append(cs, tableColumn(table, c))
	}
	return cs
}

// upsertSuffix returns the ON CONFLICT clause that overwrites columns of the
// row matching key.
func upsertSuffix(key string, columns []string) string {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", key, strings.Join(sets, ", "))
}
