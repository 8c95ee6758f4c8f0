package diff

import (
	"sort"
	"strconv"

	"db-diff/internal/schema"
)

// Kind identifies one category of structural discrepancy.
type Kind int

const (
	MissingTable Kind = iota
	ExtraTable
	MissingColumn
	ExtraColumn
	TypeMismatch
	NullableMismatch
)

// String returns the human-readable label used in reports.
func (k Kind) String() string {
	switch k {
	case MissingTable:
		return "Missing Table in Target"
	case ExtraTable:
		return "Extra Table in Target"
	case MissingColumn:
		return "Missing Column in Target"
	case ExtraColumn:
		return "Extra Column in Target"
	case TypeMismatch:
		return "Type Mismatch"
	case NullableMismatch:
		return "Nullable Mismatch"
	default:
		return "Unknown"
	}
}

// AllColumns marks a record that applies to a whole table rather than a
// single column.
const AllColumns = "ALL"

const (
	exists  = "Exists"
	missing = "Missing"
)

// Record is one detected discrepancy between the master and target schemas.
type Record struct {
	Table       string
	Column      string
	Kind        Kind
	MasterValue string
	TargetValue string
}

// Compare diffs two snapshots, treating master as authoritative: the result
// describes what the target lacks or differs in, never how to change the
// master. An empty master short-circuits to no records at all.
//
// Output is deterministic for a given pair of inputs: table names are sorted
// within each pass, column names within each table, and checks run in a
// fixed order. Names are matched case sensitively with no normalization.
func Compare(master, target schema.Snapshot) []Record {
	if master.IsEmpty() {
		return nil
	}

	masterTables := master.Tables()
	targetTables := target.Tables()

	var records []Record

	// Pass 1: table presence.
	for _, table := range sortedKeys(masterTables) {
		if _, ok := targetTables[table]; !ok {
			records = append(records, Record{
				Table: table, Column: AllColumns, Kind: MissingTable,
				MasterValue: exists, TargetValue: missing,
			})
		}
	}
	for _, table := range sortedKeys(targetTables) {
		if _, ok := masterTables[table]; !ok {
			records = append(records, Record{
				Table: table, Column: AllColumns, Kind: ExtraTable,
				MasterValue: missing, TargetValue: exists,
			})
		}
	}

	// Pass 2 and 3: column presence and properties, on common tables only.
	for _, table := range sortedKeys(masterTables) {
		targetCols, ok := targetTables[table]
		if !ok {
			continue
		}
		masterCols := masterTables[table]

		for _, col := range sortedKeys(masterCols) {
			if _, ok := targetCols[col]; !ok {
				records = append(records, Record{
					Table: table, Column: col, Kind: MissingColumn,
					MasterValue: exists, TargetValue: missing,
				})
			}
		}
		for _, col := range sortedKeys(targetCols) {
			if _, ok := masterCols[col]; !ok {
				records = append(records, Record{
					Table: table, Column: col, Kind: ExtraColumn,
					MasterValue: missing, TargetValue: exists,
				})
			}
		}

		for _, col := range sortedKeys(masterCols) {
			tc, ok := targetCols[col]
			if !ok {
				continue
			}
			mc := masterCols[col]

			if mc.DataType != tc.DataType {
				records = append(records, Record{
					Table: table, Column: col, Kind: TypeMismatch,
					MasterValue: mc.DataType, TargetValue: tc.DataType,
				})
			}
			if mc.Nullable != tc.Nullable {
				records = append(records, Record{
					Table: table, Column: col, Kind: NullableMismatch,
					MasterValue: strconv.FormatBool(mc.Nullable),
					TargetValue: strconv.FormatBool(tc.Nullable),
				})
			}
		}
	}

	return records
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
