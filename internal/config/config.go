package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	applog "expenses/internal/log"
)

const defaultConfigFile = "expenses.yaml"

type Config struct {
	// Storage
	DataBackend  string `yaml:"data_backend"`
	SQLiteDBPath string `yaml:"sqlite_db_path"`

	// Output files, relative to the working directory unless absolute
	ExportCSVPath string `yaml:"export_csv_path"`
	ChartPath     string `yaml:"chart_path"`

	// Display
	CurrencySymbol string `yaml:"currency_symbol"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		DataBackend:    "sqlite",
		SQLiteDBPath:   "expenses.db",
		ExportCSVPath:  "expenses_export.csv",
		ChartPath:      "expenses_chart.png",
		CurrencySymbol: "₹",
		LogLevel:       "warn",
		LogFormat:      "text",
	}
}

// Load builds the configuration from defaults, then the optional YAML file
// named by EXPENSES_CONFIG (or ./expenses.yaml), then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	path := getEnv("EXPENSES_CONFIG", defaultConfigFile)
	if err := cfg.mergeFile(path); err != nil {
		// Only an explicitly named file has to exist.
		if !errors.Is(err, os.ErrNotExist) || os.Getenv("EXPENSES_CONFIG") != "" {
			return nil, err
		}
	}

	cfg.DataBackend = getEnv("DATA_BACKEND", cfg.DataBackend)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.ExportCSVPath = getEnv("EXPORT_CSV_PATH", cfg.ExportCSVPath)
	cfg.ChartPath = getEnv("CHART_PATH", cfg.ChartPath)
	cfg.CurrencySymbol = getEnv("CURRENCY_SYMBOL", cfg.CurrencySymbol)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	validBackends := []string{"sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						problems = append(problems, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if strings.TrimSpace(c.ExportCSVPath) == "" {
		problems = append(problems, "CSV export path cannot be empty")
	}
	if strings.TrimSpace(c.ChartPath) == "" {
		problems = append(problems, "chart path cannot be empty")
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
