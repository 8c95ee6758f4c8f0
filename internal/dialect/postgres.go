package dialect

import (
	"database/sql"
	"fmt"
)

type PostgresDialect struct{}

// pgTypeRendering rebuilds the full type text (varchar(10), numeric(8,2))
// that information_schema.columns splits across several fields. data_type
// alone would hide length and precision changes from the comparator.
const pgTypeRendering = `c.data_type ||
        CASE WHEN c.character_maximum_length IS NOT NULL THEN '(' || c.character_maximum_length || ')'
             WHEN c.data_type IN ('numeric', 'decimal') AND c.numeric_precision IS NOT NULL
                 THEN '(' || c.numeric_precision || ',' || COALESCE(c.numeric_scale, 0) || ')'
             ELSE '' END`

func (d *PostgresDialect) TablesQuery(schema string) string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) ColumnsQuery(schema string) string {
	return `SELECT c.table_name, c.column_name, ` + pgTypeRendering + `, c.is_nullable, c.column_default
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

// tableColumns fetches the definitions of one table's columns in the current
// schema, with PK markers resolved the way the comparator expects.
func (d *PostgresDialect) tableColumns(db *sql.DB, table string) ([]ColumnDefinition, error) {
	rows, err := db.Query(`SELECT c.column_name, `+pgTypeRendering+`, c.is_nullable, c.column_default,
    COALESCE((SELECT 'PRI' FROM information_schema.table_constraints tc
        JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
        WHERE tc.constraint_type = 'PRIMARY KEY'
          AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name
          AND kcu.column_name = c.column_name LIMIT 1), '')
FROM information_schema.columns c
WHERE c.table_schema = current_schema() AND c.table_name = $1
ORDER BY c.ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query definitions for %s: %w", table, err)
	}
	defer rows.Close()

	var defs []ColumnDefinition
	for rows.Next() {
		var def ColumnDefinition
		var null string
		if err := rows.Scan(&def.Name, &def.Type, &null, &def.Default, &def.Key); err != nil {
			return nil, fmt.Errorf("failed to scan definition for %s: %w", table, err)
		}
		def.Nullable = null == "YES"
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating definitions for %s: %w", table, err)
	}
	return defs, nil
}

func (d *PostgresDialect) TableDefinition(db *sql.DB, table string) (string, error) {
	// No SHOW CREATE TABLE equivalent; synthesize from the catalog.
	defs, err := d.tableColumns(db, table)
	if err != nil {
		return "", err
	}
	if len(defs) == 0 {
		return "", fmt.Errorf("table %s not found", table)
	}
	return BuildCreateTable(table, defs, d.QuoteIdentifier), nil
}

func (d *PostgresDialect) ColumnDefinition(db *sql.DB, table, column string) (ColumnDefinition, error) {
	defs, err := d.tableColumns(db, table)
	if err != nil {
		return ColumnDefinition{}, err
	}
	for _, def := range defs {
		if def.Name == column {
			return def, nil
		}
	}
	return ColumnDefinition{}, fmt.Errorf("column %s.%s not found", table, column)
}

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (d *PostgresDialect) AddColumnStatement(table string, def ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(def.Name), ColumnClause(def))
}

func (d *PostgresDialect) ModifyColumnStatement(table string, def ColumnDefinition) string {
	// Postgres has no single MODIFY COLUMN; type and nullability change in
	// separate statements.
	t := d.QuoteIdentifier(table)
	c := d.QuoteIdentifier(def.Name)
	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s;", t, c, def.Type)
	if def.Nullable {
		stmt += fmt.Sprintf("\nALTER TABLE %s ALTER COLUMN %s DROP NOT NULL;", t, c)
	} else {
		stmt += fmt.Sprintf("\nALTER TABLE %s ALTER COLUMN %s SET NOT NULL;", t, c)
	}
	return stmt
}

func (d *PostgresDialect) SchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
