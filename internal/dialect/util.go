package dialect

import (
	"fmt"
	"strings"
)

// ColumnClause renders the type/null/default tail shared by ADD COLUMN and
// MODIFY COLUMN statements: literal default when one exists, DEFAULT NULL
// when the column is nullable without one, no default clause otherwise.
func ColumnClause(def ColumnDefinition) string {
	parts := []string{def.Type}
	if def.Nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}
	if def.Default.Valid {
		parts = append(parts, fmt.Sprintf("DEFAULT '%s'", def.Default.String))
	} else if def.Nullable {
		parts = append(parts, "DEFAULT NULL")
	}
	if def.Extra != "" {
		parts = append(parts, def.Extra)
	}
	return strings.Join(parts, " ")
}

// BuildCreateTable synthesizes a CREATE TABLE statement from column
// definitions, for engines without a native "show create" command.
func BuildCreateTable(table string, defs []ColumnDefinition, quote func(string) string) string {
	lines := make([]string, 0, len(defs)+1)
	var pks []string
	for _, def := range defs {
		lines = append(lines, fmt.Sprintf("  %s %s", quote(def.Name), ColumnClause(def)))
		if def.Key == "PRI" {
			pks = append(pks, quote(def.Name))
		}
	}
	if len(pks) > 0 {
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", quote(table), strings.Join(lines, ",\n"))
}

// DefaultSchemaName is the identity fallback for engines where the schema
// argument passes through unchanged.
func DefaultSchemaName(input string) string {
	return input
}
