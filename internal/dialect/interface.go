package dialect

import "database/sql"

// ColumnDefinition is the native column descriptor as the master database
// reports it: full type rendering, null flag, key marker, default value and
// trailing modifiers (auto_increment etc.).
type ColumnDefinition struct {
	Name     string
	Type     string
	Nullable bool
	Key      string
	Default  sql.NullString
	Extra    string
}

// Dialect abstracts database-specific operations.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	// Both queries take the schema name as their single bind argument.
	// TablesQuery yields base table names; ColumnsQuery yields
	// (table, column, full type, is_nullable, default) rows ordered by
	// table and ordinal position.
	TablesQuery(schema string) string
	ColumnsQuery(schema string) string

	// Definition Lookups (backing the sync script generator)
	TableDefinition(db *sql.DB, table string) (string, error)
	ColumnDefinition(db *sql.DB, table, column string) (ColumnDefinition, error)

	// DDL Generation
	QuoteIdentifier(name string) string
	AddColumnStatement(table string, def ColumnDefinition) string
	ModifyColumnStatement(table string, def ColumnDefinition) string

	// Helpers
	SchemaName(input string) string
}
