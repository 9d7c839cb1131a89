package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"ledger/internal/log"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var validBackends = []string{BackendFile, BackendSQLite, BackendMemory}

type Config struct {
	// Storage
	Backend  string
	FilePath string
	DBPath   string
	SlotName string

	// Presentation
	Currency string
	CacheTTL time.Duration

	LogLevel string
}

func Load() *Config {
	return &Config{
		Backend:  getEnv("LEDGER_BACKEND", BackendFile),
		FilePath: getEnv("LEDGER_FILE_PATH", "./data/ledger.json"),
		DBPath:   getEnv("LEDGER_DB_PATH", "./data/ledger.db"),
		SlotName: getEnv("LEDGER_SLOT", "transactions"),

		Currency: getEnv("LEDGER_CURRENCY", "R$"),
		CacheTTL: getEnvDuration("LEDGER_CACHE_TTL", time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validBackends, c.Backend) {
		errs = append(errs, fmt.Errorf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	switch c.Backend {
	case BackendFile:
		if err := checkDir("ledger file", c.FilePath); err != nil {
			errs = append(errs, err)
		}
	case BackendSQLite:
		if err := checkDir("SQLite database", c.DBPath); err != nil {
			errs = append(errs, err)
		}
	}

	if strings.TrimSpace(c.SlotName) == "" {
		errs = append(errs, errors.New("slot name cannot be empty"))
	}
	if strings.TrimSpace(c.Currency) == "" {
		errs = append(errs, errors.New("currency symbol cannot be empty"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errs = append(errs, fmt.Errorf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// checkDir makes sure the parent directory of path exists, creating it if needed.
func checkDir(what, path string) error {
	if path == "" {
		return fmt.Errorf("%s path cannot be empty", what)
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s directory '%s': %v", what, dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
