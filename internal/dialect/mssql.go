package dialect

import (
	"database/sql"
	"fmt"
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) often prefers @p1, @p2 named parameters over ?

const mssqlTypeRendering = `c.DATA_TYPE + CASE
        WHEN c.CHARACTER_MAXIMUM_LENGTH = -1 THEN '(max)'
        WHEN c.CHARACTER_MAXIMUM_LENGTH IS NOT NULL THEN '(' + CAST(c.CHARACTER_MAXIMUM_LENGTH AS VARCHAR(10)) + ')'
        WHEN c.DATA_TYPE IN ('decimal', 'numeric') THEN '(' + CAST(c.NUMERIC_PRECISION AS VARCHAR(10)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(10)) + ')'
        ELSE '' END`

func (d *MSSQLDialect) TablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) ColumnsQuery(schema string) string {
	return `SELECT c.TABLE_NAME, c.COLUMN_NAME, ` + mssqlTypeRendering + `, c.IS_NULLABLE, c.COLUMN_DEFAULT
FROM INFORMATION_SCHEMA.COLUMNS c
WHERE c.TABLE_SCHEMA = @p1
ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION`
}

func (d *MSSQLDialect) tableColumns(db *sql.DB, table string) ([]ColumnDefinition, error) {
	rows, err := db.Query(`SELECT c.COLUMN_NAME, `+mssqlTypeRendering+`, c.IS_NULLABLE, c.COLUMN_DEFAULT,
    CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM INFORMATION_SCHEMA.COLUMNS c
LEFT JOIN (
    SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
    FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
    WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = SCHEMA_NAME()
) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
WHERE c.TABLE_SCHEMA = SCHEMA_NAME() AND c.TABLE_NAME = @p1
ORDER BY c.ORDINAL_POSITION`, table)
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

func (d *MSSQLDialect) TableDefinition(db *sql.DB, table string) (string, error) {
	// T-SQL has no SHOW CREATE TABLE; synthesize from the catalog.
	defs, err := d.tableColumns(db, table)
	if err != nil {
		return "", err
	}
	if len(defs) == 0 {
		return "", fmt.Errorf("table %s not found", table)
	}
	return BuildCreateTable(table, defs, d.QuoteIdentifier), nil
}

func (d *MSSQLDialect) ColumnDefinition(db *sql.DB, table, column string) (ColumnDefinition, error) {
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

func (d *MSSQLDialect) QuoteIdentifier(name string) string {
	return "[" + name + "]"
}

func (d *MSSQLDialect) AddColumnStatement(table string, def ColumnDefinition) string {
	// T-SQL omits the COLUMN keyword on ADD.
	return fmt.Sprintf("ALTER TABLE %s ADD %s %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(def.Name), ColumnClause(def))
}

func (d *MSSQLDialect) ModifyColumnStatement(table string, def ColumnDefinition) string {
	null := "NOT NULL"
	if def.Nullable {
		null = "NULL"
	}
	// ALTER COLUMN does not accept DEFAULT clauses; those live in named
	// constraints, which stay untouched here.
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(def.Name), def.Type, null)
}

func (d *MSSQLDialect) SchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
