package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"db-diff/internal/dialect"
)

// ListTables enumerates the base tables visible through the dialect.
func ListTables(db *sql.DB, d dialect.Dialect, schemaName string) ([]string, error) {
	target := d.SchemaName(schemaName)

	rows, err := db.Query(d.TablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// Read captures the structure of one database into a Snapshot, tagging every
// descriptor with the given label. On failure the returned snapshot is empty
// and the error is reported to the caller, which decides whether to continue
// with degraded input. onTable, if non-nil, is invoked once per table as its
// first column is discovered.
func Read(db *sql.DB, d dialect.Dialect, schemaName, label string, onTable func(table string)) (Snapshot, error) {
	snap := Snapshot{Source: label}
	target := d.SchemaName(schemaName)

	rows, err := db.Query(d.ColumnsQuery(target), target)
	if err != nil {
		return Snapshot{Source: label}, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]map[string]bool)
	for rows.Next() {
		var tName, cName, dType, isNull, dflt sql.NullString
		if err := rows.Scan(&tName, &cName, &dType, &isNull, &dflt); err != nil {
			return Snapshot{Source: label}, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		cols := seen[tName.String]
		if cols == nil {
			cols = make(map[string]bool)
			seen[tName.String] = cols
			if onTable != nil {
				onTable(tName.String)
			}
		}
		if cols[cName.String] {
			continue
		}
		cols[cName.String] = true

		snap.Columns = append(snap.Columns, ColumnDescriptor{
			Source:   label,
			Table:    tName.String,
			Column:   cName.String,
			DataType: dType.String,
			// Oracle reports Y/N where everyone else reports YES/NO.
			Nullable: strings.HasPrefix(strings.ToUpper(isNull.String), "Y"),
			Default:  dflt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return Snapshot{Source: label}, fmt.Errorf("error iterating columns: %w", err)
	}
	return snap, nil
}
