package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	masterDSN  string
	targetDSN  string
	driverFlag string
)

var RootCmd = &cobra.Command{
	Use:   "db-diff",
	Short: "A database structure comparison tool",
	Long: `
  ____  ____    ____ ___ _____ _____
 |  _ \| __ )  |  _ \_ _|  ___|  ___|
 | | | |  _ \  | | | | || |_  | |_
 | |_| | |_) | | |_| | ||  _| |  _|
 |____/|____/  |____/___|_|   |_|

DB DIFF 🔍 - Schema Comparator & Sync Script Generator
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-diff.yaml)")
	RootCmd.PersistentFlags().StringVar(&masterDSN, "master-dsn", "", "DSN of the master (authoritative) database")
	RootCmd.PersistentFlags().StringVar(&targetDSN, "target-dsn", "", "DSN of the target database to be patched")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "SQL driver for both databases (mysql, postgres, sqlserver, oracle, sqlite3)")

	viper.BindPFlag("databases.master.dsn", RootCmd.PersistentFlags().Lookup("master-dsn"))
	viper.BindPFlag("databases.target.dsn", RootCmd.PersistentFlags().Lookup("target-dsn"))
	viper.BindPFlag("databases.driver", RootCmd.PersistentFlags().Lookup("driver"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A local .env can carry DATABASE_URL1 / DATABASE_URL2.
	godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-diff")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
