// Package config loads runtime configuration from the environment and
// from rate table files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// Supported data backends
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config holds the runtime configuration of the report server
type Config struct {
	// HTTP Server
	Port string

	// Storage
	DataBackend  string
	BadgerPath   string
	SQLiteDBPath string

	// Reporting
	RatesFile      string
	BaseCurrency   string
	ReportDir      string
	ReportSchedule string

	// Logging
	LogLevel string
}

// Load reads the configuration from environment variables, falling
// back to defaults that work out of the box.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:  getEnv("DATA_BACKEND", BackendBadger),
		BadgerPath:   getEnv("BADGER_PATH", "./data/badger"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/sales.db"),

		RatesFile:      getEnv("RATES_FILE", ""),
		BaseCurrency:   getEnv("BASE_CURRENCY", "USD"),
		ReportDir:      getEnv("REPORT_DIR", "./reports"),
		ReportSchedule: getEnv("REPORT_SCHEDULE", ""),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	switch c.DataBackend {
	case BackendBadger:
		if c.BadgerPath == "" {
			errors = append(errors, "badger path cannot be empty when using badger backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]",
			c.DataBackend, BackendBadger, BackendSQLite))
	}

	// Validate base currency
	if len(c.BaseCurrency) != 3 {
		errors = append(errors, fmt.Sprintf("invalid base currency '%s': must be a 3-letter code", c.BaseCurrency))
	}

	// Validate report directory
	if c.ReportDir == "" {
		errors = append(errors, "report directory cannot be empty")
	}

	// Validate schedule, if scheduled reporting is enabled
	if c.ReportSchedule != "" {
		if _, err := cron.ParseStandard(c.ReportSchedule); err != nil {
			errors = append(errors, fmt.Sprintf("invalid report schedule '%s': %v", c.ReportSchedule, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
