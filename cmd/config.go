package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EndpointConfig describes one database endpoint of the comparison.
type EndpointConfig struct {
	Label  string `mapstructure:"label"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
}

// GetEndpoints resolves the master and target endpoints from
// Flag > Config > Environment (DATABASE_URL1 / DATABASE_URL2).
func GetEndpoints() (EndpointConfig, EndpointConfig, error) {
	master := readEndpointConfig("databases.master", "DATABASE_URL1", "DB_1")
	target := readEndpointConfig("databases.target", "DATABASE_URL2", "DB_2")

	if master.DSN == "" && target.DSN == "" {
		return master, target, fmt.Errorf("no database configured: set --master-dsn/--target-dsn, a config file, or DATABASE_URL1/DATABASE_URL2")
	}

	return master, target, nil
}

func readEndpointConfig(key, envVar, defaultLabel string) EndpointConfig {
	cfg := EndpointConfig{
		Label:  viper.GetString(key + ".label"),
		Driver: viper.GetString(key + ".driver"),
		DSN:    viper.GetString(key + ".dsn"),
		Schema: viper.GetString(key + ".schema"),
	}

	if cfg.DSN == "" {
		cfg.DSN = os.Getenv(envVar)
	}
	if cfg.Label == "" {
		cfg.Label = defaultLabel
	}
	if cfg.Driver == "" {
		if shared := viper.GetString("databases.driver"); shared != "" {
			cfg.Driver = shared
		} else {
			cfg.Driver = detectDriver(cfg.DSN)
		}
	}
	cfg.Driver = normalizeDriver(cfg.Driver)

	return cfg
}

// detectDriver guesses the sql driver from the shape of the DSN.
func detectDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.Contains(lower, "sslmode"):
		return "postgres"
	case strings.HasPrefix(lower, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(lower, "oracle://"):
		return "oracle"
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"),
		strings.HasPrefix(lower, "file:"):
		return "sqlite3"
	default:
		return "mysql"
	}
}

// normalizeDriver maps config spellings onto registered driver names.
func normalizeDriver(name string) string {
	switch strings.ToLower(name) {
	case "sqlite":
		return "sqlite3"
	case "mssql":
		return "sqlserver"
	default:
		return strings.ToLower(name)
	}
}
