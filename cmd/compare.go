package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"db-diff/internal/dialect"
	"db-diff/internal/diff"
	"db-diff/internal/engine"
	"db-diff/internal/report"
	"db-diff/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var (
	reportDir  string
	syncOut    string
	failOnDiff bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two database structures and generate a sync script",
	RunE: func(cmd *cobra.Command, args []string) error {
		masterCfg, targetCfg, err := GetEndpoints()
		if err != nil {
			return err
		}

		masterSnap, masterDB := readEndpoint(masterCfg)
		if masterDB != nil {
			defer masterDB.Close()
		}
		targetSnap, targetDB := readEndpoint(targetCfg)
		if targetDB != nil {
			defer targetDB.Close()
		}

		if masterSnap.IsEmpty() && targetSnap.IsEmpty() {
			fmt.Println("No data retrieved from either database.")
			return nil
		}

		records := diff.Compare(masterSnap, targetSnap)

		if reportDir != "" {
			if err := writeReports(reportDir, masterSnap, targetSnap, records); err != nil {
				return fmt.Errorf("failed to write reports: %w", err)
			}
			fmt.Printf("📄 Reports written to %s\n", reportDir)
		}

		if syncOut != "" {
			msg, err := writeSyncScript(syncOut, masterDB, masterCfg.Driver, records)
			if err != nil {
				return err
			}
			fmt.Println(msg)
		}

		report.PrintSummary(os.Stdout, masterSnap, targetSnap, records)

		if failOnDiff && len(records) > 0 {
			return fmt.Errorf("%d structural difference(s) found", len(records))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory to write CSV structure and difference reports into")
	compareCmd.Flags().StringVar(&syncOut, "sync-out", "", "Path to write the generated sync SQL script to")
	compareCmd.Flags().BoolVar(&failOnDiff, "fail-on-diff", false, "Exit with an error when differences are found")
}

// readEndpoint connects to one endpoint and reads its structure. Connection
// or read failures are reported as warnings and yield an empty snapshot, so
// one dead database never aborts the whole comparison.
func readEndpoint(cfg EndpointConfig) (schema.Snapshot, *sql.DB) {
	empty := schema.Snapshot{Source: cfg.Label}

	if cfg.DSN == "" {
		fmt.Printf("⚠️  %s: no DSN configured, treating as empty\n", cfg.Label)
		return empty, nil
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		fmt.Printf("⚠️  %s: failed to open connection: %v\n", cfg.Label, err)
		return empty, nil
	}
	if err := db.Ping(); err != nil {
		fmt.Printf("⚠️  %s: failed to connect: %v\n", cfg.Label, err)
		db.Close()
		return empty, nil
	}

	d := dialect.GetDialect(cfg.Driver)
	schemaName, err := resolveSchemaName(db, cfg)
	if err != nil {
		fmt.Printf("⚠️  %s: %v\n", cfg.Label, err)
		db.Close()
		return empty, nil
	}

	tables, err := schema.ListTables(db, d, schemaName)
	if err != nil {
		fmt.Printf("⚠️  %s: failed to list tables: %v\n", cfg.Label, err)
		db.Close()
		return empty, nil
	}
	fmt.Printf("🔍 Connected to %s. Found %d tables.\n", cfg.Label, len(tables))

	uiprogress.Start()
	bar := uiprogress.AddBar(len(tables) + 1).AppendCompleted()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("%-8s", cfg.Label)
	})

	snap, err := schema.Read(db, d, schemaName, cfg.Label, func(table string) {
		bar.Incr()
	})
	bar.Set(len(tables) + 1)
	uiprogress.Stop()

	if err != nil {
		fmt.Printf("⚠️  %s: failed to read structure: %v\n", cfg.Label, err)
		db.Close()
		return empty, nil
	}

	return snap, db
}

// writeSyncScript renders the sync SQL from the master's live definitions and
// writes it to path. Sync statements need the master connection, so a dead
// master downgrades to a visible skip instead of silence.
func writeSyncScript(path string, masterDB *sql.DB, driver string, records []diff.Record) (string, error) {
	if masterDB == nil {
		return "⚠️  Sync script skipped: master database unavailable.", nil
	}
	d := dialect.GetDialect(driver)
	script := engine.GenerateSyncScript(records, &engine.DBDefinitions{DB: masterDB, Dialect: d}, d)
	if script == "" {
		return "No sync statements to generate.", nil
	}
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return "", fmt.Errorf("failed to write sync script: %w", err)
	}
	return fmt.Sprintf("🔧 Sync script written to %s", path), nil
}

// resolveSchemaName fills in the schema to scan when the config leaves it
// blank. MySQL is the only engine where it has to be asked from the server.
func resolveSchemaName(db *sql.DB, cfg EndpointConfig) (string, error) {
	if cfg.Schema != "" {
		return cfg.Schema, nil
	}
	if cfg.Driver == "mysql" {
		var name sql.NullString
		if err := db.QueryRow("SELECT DATABASE()").Scan(&name); err != nil {
			return "", fmt.Errorf("failed to get database name: %w", err)
		}
		if !name.Valid || name.String == "" {
			return "", fmt.Errorf("no database selected in DSN")
		}
		return name.String, nil
	}
	return "", nil // dialect default (public, dbo, main, ...)
}

// writeReports dumps the snapshots and the differences as CSV files.
func writeReports(dir string, master, target schema.Snapshot, records []diff.Record) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"structure_master.csv", func(f *os.File) error {
			return report.WriteStructureCSV(f, master)
		}},
		{"structure_target.csv", func(f *os.File) error {
			return report.WriteStructureCSV(f, target)
		}},
		{"structure_combined.csv", func(f *os.File) error {
			return report.WriteStructureCSV(f, master, target)
		}},
		{"differences.csv", func(f *os.File) error {
			return report.WriteDifferencesCSV(f, records)
		}},
	}

	for _, file := range files {
		f, err := os.Create(filepath.Join(dir, file.name))
		if err != nil {
			return err
		}
		if err := file.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
