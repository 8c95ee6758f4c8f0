package cmd

import (
	"fmt"
	"os"
	"strings"

	"db-diff/internal/sqllint"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	lintDialect string
	onlySyntax  bool
	applyFix    bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Check a SQL file for syntax and layout problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		src := string(data)
		opts := sqllint.Options{Dialect: lintDialect, OnlySyntax: onlySyntax}

		if applyFix {
			fixed, changed := sqllint.Fix(src, opts)
			if !changed {
				fmt.Printf("✅ %s: no changes needed\n", path)
				return nil
			}
			// Keep the original next to the rewritten file.
			if err := os.WriteFile(path+".bak", data, 0644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			if err := os.WriteFile(path, []byte(fixed), 0644); err != nil {
				return fmt.Errorf("failed to write fixed file: %w", err)
			}
			fmt.Printf("🔧 %s fixed (original saved as %s.bak)\n", path, path)
			return nil
		}

		violations := sqllint.Lint(src, opts)
		if len(violations) == 0 {
			fmt.Printf("✅ %s: no problems found\n", path)
			return nil
		}

		for _, v := range violations {
			line := fmt.Sprintf("%s:%d:%d  %s  %s", path, v.Line, v.Col, v.Code, v.Description)
			if strings.HasPrefix(v.Code, "PRS") {
				color.New(color.FgRed).Fprintln(os.Stdout, line)
			} else {
				color.New(color.FgYellow).Fprintln(os.Stdout, line)
			}
		}
		return fmt.Errorf("%d problem(s) found in %s", len(violations), path)
	},
}

func init() {
	RootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintDialect, "dialect", "ansi", "SQL dialect for keyword rules (ansi, mysql, postgres)")
	lintCmd.Flags().BoolVar(&onlySyntax, "only-syntax", false, "Report only syntax-level (PRS) problems")
	lintCmd.Flags().BoolVar(&applyFix, "fix", false, "Rewrite the file to fix layout problems (keeps a .bak copy)")
}
