package sqllint

var ansiKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "INNER", "LEFT", "RIGHT", "FULL",
	"OUTER", "CROSS", "ON", "GROUP", "BY", "HAVING", "ORDER", "ASC", "DESC",
	"LIMIT", "OFFSET", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "ALTER", "DROP", "INDEX", "VIEW", "UNION", "ALL",
	"DISTINCT", "AS", "AND", "OR", "NOT", "NULL", "IS", "IN", "EXISTS",
	"BETWEEN", "LIKE", "CASE", "WHEN", "THEN", "ELSE", "END", "PRIMARY",
	"KEY", "FOREIGN", "REFERENCES", "CONSTRAINT", "UNIQUE", "DEFAULT",
	"CHECK", "ADD", "COLUMN", "CASCADE", "TRUNCATE", "GRANT", "REVOKE",
}

var mysqlKeywords = []string{
	"MODIFY", "CHANGE", "IGNORE", "REPLACE", "SHOW", "DESCRIBE",
	"AUTO_INCREMENT", "UNSIGNED", "ZEROFILL", "ENGINE", "CHARSET",
}

var postgresKeywords = []string{
	"RETURNING", "ILIKE", "SERIAL", "BIGSERIAL", "RESTRICT", "USING",
	"CONCURRENTLY", "MATERIALIZED",
}

// keywordSet builds the upper-cased keyword set for a dialect name. Unknown
// names fall back to the ANSI set.
func keywordSet(dialect string) map[string]bool {
	set := make(map[string]bool, len(ansiKeywords)+len(mysqlKeywords))
	for _, k := range ansiKeywords {
		set[k] = true
	}
	switch dialect {
	case "mysql":
		for _, k := range mysqlKeywords {
			set[k] = true
		}
	case "postgres", "postgresql":
		for _, k := range postgresKeywords {
			set[k] = true
		}
	}
	return set
}
