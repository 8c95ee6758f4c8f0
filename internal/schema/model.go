package schema

import "sort"

// ColumnDescriptor is one row of a structure snapshot: a single column of a
// single table, tagged with the label of the database it came from.
type ColumnDescriptor struct {
	Source   string
	Table    string
	Column   string
	DataType string
	Nullable bool
	Default  string
}

// Snapshot is a flattened, point-in-time capture of one database's
// table/column structure, in discovery order.
type Snapshot struct {
	Source  string
	Columns []ColumnDescriptor
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Columns) == 0
}

// Tables builds the table -> column -> descriptor lookup used for
// comparison. Rebuilt on every call, never persisted; the first occurrence
// of a (table, column) pair wins.
func (s Snapshot) Tables() map[string]map[string]ColumnDescriptor {
	lookup := make(map[string]map[string]ColumnDescriptor)
	for _, col := range s.Columns {
		cols, ok := lookup[col.Table]
		if !ok {
			cols = make(map[string]ColumnDescriptor)
			lookup[col.Table] = cols
		}
		if _, exists := cols[col.Column]; !exists {
			cols[col.Column] = col
		}
	}
	return lookup
}

// TableNames returns the distinct table names in sorted order.
func (s Snapshot) TableNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, col := range s.Columns {
		if !seen[col.Table] {
			seen[col.Table] = true
			names = append(names, col.Table)
		}
	}
	sort.Strings(names)
	return names
}

func (s Snapshot) TableCount() int {
	return len(s.TableNames())
}
