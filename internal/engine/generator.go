package engine

import (
	"database/sql"
	"fmt"
	"strings"

	"db-diff/internal/dialect"
	"db-diff/internal/diff"
)

// DefinitionProvider resolves native object definitions from the master
// database when sync statements are generated.
type DefinitionProvider interface {
	TableDefinition(table string) (string, error)
	ColumnDefinition(table, column string) (dialect.ColumnDefinition, error)
}

// DBDefinitions backs a DefinitionProvider with a live master connection.
type DBDefinitions struct {
	DB      *sql.DB
	Dialect dialect.Dialect
}

func (p *DBDefinitions) TableDefinition(table string) (string, error) {
	return p.Dialect.TableDefinition(p.DB, table)
}

func (p *DBDefinitions) ColumnDefinition(table, column string) (dialect.ColumnDefinition, error) {
	return p.Dialect.ColumnDefinition(p.DB, table, column)
}

var _ DefinitionProvider = (*DBDefinitions)(nil)

// GenerateSyncScript renders SQL that would bring the target's structure
// toward the master's. The script is advisory text: it is never executed
// here, and extra structure in the target is reported upstream but never
// dropped. A failed definition lookup becomes a comment in the stream and
// generation continues with the remaining records.
//
// Output format: one or two comment lines, then the statement(s), with
// blocks separated by a blank line.
func GenerateSyncScript(records []diff.Record, defs DefinitionProvider, d dialect.Dialect) string {
	if len(records) == 0 {
		return ""
	}

	grouped, order := groupByTable(records)

	var blocks []string
	for _, table := range order {
		group := grouped[table]

		if hasKind(group, diff.MissingTable) {
			stmt, err := defs.TableDefinition(table)
			if err != nil {
				blocks = append(blocks, fmt.Sprintf("-- Error generating CREATE TABLE for %s: %v", table, err))
				continue
			}
			stmt = strings.TrimSuffix(strings.TrimSpace(stmt), ";")
			blocks = append(blocks, fmt.Sprintf("-- Missing Table: %s\n%s;", table, stmt))
			// The whole table will be created; column patches would be redundant.
			continue
		}

		for _, rec := range group {
			switch rec.Kind {
			case diff.MissingColumn:
				def, err := defs.ColumnDefinition(rec.Table, rec.Column)
				if err != nil {
					blocks = append(blocks, lookupError(rec, err))
					continue
				}
				blocks = append(blocks, fmt.Sprintf("-- Missing Column: %s.%s\n%s",
					rec.Table, rec.Column, d.AddColumnStatement(rec.Table, def)))

			case diff.TypeMismatch, diff.NullableMismatch:
				def, err := defs.ColumnDefinition(rec.Table, rec.Column)
				if err != nil {
					blocks = append(blocks, lookupError(rec, err))
					continue
				}
				blocks = append(blocks, fmt.Sprintf("-- Mismatch: %s.%s (%s)\n%s",
					rec.Table, rec.Column, rec.Kind, d.ModifyColumnStatement(rec.Table, def)))
			}
			// ExtraTable / ExtraColumn: never patched automatically.
		}
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func lookupError(rec diff.Record, err error) string {
	return fmt.Sprintf("-- Error getting definition for %s.%s: %v", rec.Table, rec.Column, err)
}

// groupByTable partitions records per table, preserving first-appearance
// order so the script follows the difference report.
func groupByTable(records []diff.Record) (map[string][]diff.Record, []string) {
	grouped := make(map[string][]diff.Record)
	var order []string
	for _, rec := range records {
		if _, ok := grouped[rec.Table]; !ok {
			order = append(order, rec.Table)
		}
		grouped[rec.Table] = append(grouped[rec.Table], rec)
	}
	return grouped, order
}

func hasKind(records []diff.Record, kind diff.Kind) bool {
	for _, rec := range records {
		if rec.Kind == kind {
			return true
		}
	}
	return false
}
