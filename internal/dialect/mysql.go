package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) TablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) ColumnsQuery(schema string) string {
	// COLUMN_TYPE carries the full rendering (varchar(10), int unsigned)
	// so length changes are visible to the comparator.
	return `SELECT TABLE_NAME, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) TableDefinition(db *sql.DB, table string) (string, error) {
	// SHOW statements cannot be prepared with bind parameters.
	var name, stmt string
	row := db.QueryRow(fmt.Sprintf("SHOW CREATE TABLE %s", d.QuoteIdentifier(table)))
	if err := row.Scan(&name, &stmt); err != nil {
		return "", fmt.Errorf("failed to fetch create statement for %s: %w", table, err)
	}
	return stmt, nil
}

// columnDefinitionQuery builds the SHOW COLUMNS lookup. SHOW statements
// cannot be prepared with bind parameters, so the column name goes in as a
// string literal with its quotes doubled.
func (d *MysqlDialect) columnDefinitionQuery(table, column string) string {
	escaped := strings.ReplaceAll(column, "'", "''")
	return fmt.Sprintf("SHOW COLUMNS FROM %s WHERE Field = '%s'", d.QuoteIdentifier(table), escaped)
}

func (d *MysqlDialect) ColumnDefinition(db *sql.DB, table, column string) (ColumnDefinition, error) {
	// SHOW COLUMNS returns: Field, Type, Null, Key, Default, Extra
	row := db.QueryRow(d.columnDefinitionQuery(table, column))

	var def ColumnDefinition
	var null string
	if err := row.Scan(&def.Name, &def.Type, &null, &def.Key, &def.Default, &def.Extra); err != nil {
		return def, fmt.Errorf("failed to fetch definition for %s.%s: %w", table, column, err)
	}
	def.Nullable = null == "YES"
	return def, nil
}

func (d *MysqlDialect) QuoteIdentifier(name string) string {
	return "`" + name + "`"
}

func (d *MysqlDialect) AddColumnStatement(table string, def ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(def.Name), ColumnClause(def))
}

func (d *MysqlDialect) ModifyColumnStatement(table string, def ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(def.Name), ColumnClause(def))
}

func (d *MysqlDialect) SchemaName(input string) string {
	return DefaultSchemaName(input)
}
