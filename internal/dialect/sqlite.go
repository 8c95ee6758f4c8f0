package dialect

import (
	"database/sql"
	"fmt"
)

type SQLiteDialect struct{}

// SQLite has no schemas in the information_schema sense; the bind argument
// is consumed by a dummy clause like the Oracle dialect does.

func (d *SQLiteDialect) TablesQuery(schema string) string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND ? IS NOT NULL ORDER BY name`
}

func (d *SQLiteDialect) ColumnsQuery(schema string) string {
	// pragma_table_info is the table-valued form of PRAGMA table_info,
	// which allows one query over every table.
	return `SELECT m.name, p.name, p.type,
    CASE WHEN p."notnull" = 0 THEN 'YES' ELSE 'NO' END,
    p.dflt_value
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, p.cid`
}

func (d *SQLiteDialect) TableDefinition(db *sql.DB, table string) (string, error) {
	var stmt sql.NullString
	row := db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
	if err := row.Scan(&stmt); err != nil {
		return "", fmt.Errorf("failed to fetch create statement for %s: %w", table, err)
	}
	if !stmt.Valid {
		return "", fmt.Errorf("no create statement stored for %s", table)
	}
	return stmt.String, nil
}

func (d *SQLiteDialect) ColumnDefinition(db *sql.DB, table, column string) (ColumnDefinition, error) {
	// PRAGMA table_info returns: cid, name, type, notnull, dflt_value, pk
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", d.QuoteIdentifier(table)))
	if err != nil {
		return ColumnDefinition{}, fmt.Errorf("failed to query definitions for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notNull, pk int
		var name, typeName string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typeName, &notNull, &dflt, &pk); err != nil {
			return ColumnDefinition{}, fmt.Errorf("failed to scan definition for %s: %w", table, err)
		}
		if name != column {
			continue
		}
		def := ColumnDefinition{
			Name:     name,
			Type:     typeName,
			Nullable: notNull == 0,
			Default:  dflt,
		}
		if pk > 0 {
			def.Key = "PRI"
		}
		return def, nil
	}
	if err := rows.Err(); err != nil {
		return ColumnDefinition{}, fmt.Errorf("error iterating definitions for %s: %w", table, err)
	}
	return ColumnDefinition{}, fmt.Errorf("column %s.%s not found", table, column)
}

func (d *SQLiteDialect) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (d *SQLiteDialect) AddColumnStatement(table string, def ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(def.Name), ColumnClause(def))
}

func (d *SQLiteDialect) ModifyColumnStatement(table string, def ColumnDefinition) string {
	// SQLite has no MODIFY COLUMN; the table must be rebuilt by hand.
	return fmt.Sprintf("-- SQLite cannot modify column %s.%s in place; manual table rebuild required.",
		table, def.Name)
}

func (d *SQLiteDialect) SchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
