package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type OracleDialect struct{}

// Oracle's USER_* views are already scoped to the connected user, so the
// schema bind argument is consumed by a dummy clause to keep the calling
// convention uniform across dialects.

const oraTypeRendering = `t.DATA_TYPE || CASE
        WHEN t.DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR', 'RAW') THEN '(' || t.DATA_LENGTH || ')'
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL
            THEN '(' || t.DATA_PRECISION || ',' || COALESCE(t.DATA_SCALE, 0) || ')'
        ELSE '' END`

func (d *OracleDialect) TablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`
}

func (d *OracleDialect) ColumnsQuery(schema string) string {
	return `SELECT t.TABLE_NAME, t.COLUMN_NAME, ` + oraTypeRendering + `, t.NULLABLE, t.DATA_DEFAULT
FROM USER_TAB_COLUMNS t
WHERE :1 IS NOT NULL
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) TableDefinition(db *sql.DB, table string) (string, error) {
	var ddl string
	row := db.QueryRow(`SELECT DBMS_METADATA.GET_DDL('TABLE', :1) FROM DUAL`, strings.ToUpper(table))
	if err := row.Scan(&ddl); err != nil {
		return "", fmt.Errorf("failed to fetch create statement for %s: %w", table, err)
	}
	return strings.TrimSpace(ddl), nil
}

func (d *OracleDialect) ColumnDefinition(db *sql.DB, table, column string) (ColumnDefinition, error) {
	row := db.QueryRow(`SELECT t.COLUMN_NAME, `+oraTypeRendering+`, t.NULLABLE, t.DATA_DEFAULT,
    CASE WHEN p.COLUMN_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM USER_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.TABLE_NAME, cc.COLUMN_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
WHERE t.TABLE_NAME = :1 AND t.COLUMN_NAME = :2`, strings.ToUpper(table), strings.ToUpper(column))

	var def ColumnDefinition
	var null string
	if err := row.Scan(&def.Name, &def.Type, &null, &def.Default, &def.Key); err != nil {
		return def, fmt.Errorf("failed to fetch definition for %s.%s: %w", table, column, err)
	}
	def.Nullable = strings.HasPrefix(null, "Y")
	return def, nil
}

func (d *OracleDialect) QuoteIdentifier(name string) string {
	// Oracle identifiers are stored upper case unless quoted at creation;
	// quoting here would make every name case sensitive.
	return name
}

func (d *OracleDialect) AddColumnStatement(table string, def ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s ADD (%s %s);", table, def.Name, ColumnClause(def))
}

func (d *OracleDialect) ModifyColumnStatement(table string, def ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s MODIFY (%s %s);", table, def.Name, ColumnClause(def))
}

func (d *OracleDialect) SchemaName(input string) string {
	if input == "" {
		// Any non-empty value satisfies the dummy bind clause.
		return "USER"
	}
	return input
}
