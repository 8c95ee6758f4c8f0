package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"db-diff/internal/diff"
	"db-diff/internal/schema"
)

var (
	structureHeader  = []string{"Database", "Table", "Column", "Type", "Nullable", "Default"}
	differenceHeader = []string{"Table", "Column", "Difference Type", "Master Value", "Target Value"}
)

// WriteStructureCSV renders snapshot rows, one line per column descriptor.
// Passing several snapshots produces the combined report.
func WriteStructureCSV(w io.Writer, snaps ...schema.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(structureHeader); err != nil {
		return err
	}
	for _, snap := range snaps {
		for _, col := range snap.Columns {
			row := []string{col.Source, col.Table, col.Column, col.DataType, strconv.FormatBool(col.Nullable), col.Default}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDifferencesCSV renders the difference list. The header row is written
// even when there are no differences, so an empty report stays parseable.
func WriteDifferencesCSV(w io.Writer, records []diff.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(differenceHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{rec.Table, rec.Column, rec.Kind.String(), rec.MasterValue, rec.TargetValue}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrintSummary writes the human-readable comparison outcome.
func PrintSummary(w io.Writer, master, target schema.Snapshot, records []diff.Record) {
	fmt.Fprintf(w, "\n=== Comparison Summary ===\n")
	fmt.Fprintf(w, "Master (%s): %d tables, %d columns\n", master.Source, master.TableCount(), len(master.Columns))
	fmt.Fprintf(w, "Target (%s): %d tables, %d columns\n", target.Source, target.TableCount(), len(target.Columns))

	if master.IsEmpty() {
		color.New(color.FgYellow).Fprintln(w, "Master snapshot is empty; nothing to compare against.")
		return
	}

	if len(records) == 0 {
		color.New(color.FgGreen).Fprintln(w, "No structural differences found.")
		return
	}

	fmt.Fprintf(w, "Found %d differences:\n", len(records))
	for _, rec := range records {
		line := fmt.Sprintf("- %s.%s: %s (master=%s, target=%s)",
			rec.Table, rec.Column, rec.Kind, rec.MasterValue, rec.TargetValue)
		switch rec.Kind {
		case diff.MissingTable, diff.MissingColumn:
			color.New(color.FgRed).Fprintln(w, line)
		case diff.ExtraTable, diff.ExtraColumn:
			color.New(color.FgYellow).Fprintln(w, line)
		default:
			color.New(color.FgCyan).Fprintln(w, line)
		}
	}
}
