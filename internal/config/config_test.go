package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Backend:  BackendMemory,
		FilePath: "./ledger.json",
		DBPath:   "./ledger.db",
		SlotName: "transactions",
		Currency: "R$",
		CacheTTL: time.Minute,
		LogLevel: "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid memory backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid file backend in working directory",
			mutate:  func(c *Config) { c.Backend = BackendFile },
			wantErr: false,
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.Backend = "sheets" },
			wantErr:     true,
			errorString: "invalid backend 'sheets': must be one of [file sqlite memory]",
		},
		{
			name: "file backend missing path",
			mutate: func(c *Config) {
				c.Backend = BackendFile
				c.FilePath = ""
			},
			wantErr:     true,
			errorString: "ledger file path cannot be empty",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.Backend = BackendSQLite
				c.DBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "empty slot name",
			mutate:      func(c *Config) { c.SlotName = "  " },
			wantErr:     true,
			errorString: "slot name cannot be empty",
		},
		{
			name:        "empty currency",
			mutate:      func(c *Config) { c.Currency = "" },
			wantErr:     true,
			errorString: "currency symbol cannot be empty",
		},
		{
			name:        "negative cache TTL",
			mutate:      func(c *Config) { c.CacheTTL = -time.Second },
			wantErr:     true,
			errorString: "invalid cache TTL -1s: must not be negative",
		},
		{
			name:        "cache TTL too long",
			mutate:      func(c *Config) { c.CacheTTL = 25 * time.Hour },
			wantErr:     true,
			errorString: "must be at most 24 hours",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "chatty" },
			wantErr:     true,
			errorString: `unknown log level "chatty"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want error containing %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Backend = "nope"
	cfg.SlotName = ""
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"invalid backend", "slot name", "unknown log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("sqlite directory", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backend = BackendSQLite
		cfg.DBPath = filepath.Join(tempDir, "nested", "db", "ledger.db")

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if _, err := os.Stat(filepath.Dir(cfg.DBPath)); err != nil {
			t.Errorf("database directory was not created: %v", err)
		}
	})

	t.Run("file directory", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backend = BackendFile
		cfg.FilePath = filepath.Join(tempDir, "data", "ledger.json")

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if _, err := os.Stat(filepath.Dir(cfg.FilePath)); err != nil {
			t.Errorf("ledger directory was not created: %v", err)
		}
	})

	t.Run("memory backend touches nothing", func(t *testing.T) {
		cfg := validConfig()
		cfg.FilePath = filepath.Join(tempDir, "untouched", "ledger.json")

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if _, err := os.Stat(filepath.Dir(cfg.FilePath)); !os.IsNotExist(err) {
			t.Errorf("memory backend must not create directories")
		}
	})
}

func TestLoad(t *testing.T) {
	for _, key := range []string{
		"LEDGER_BACKEND", "LEDGER_FILE_PATH", "LEDGER_DB_PATH", "LEDGER_SLOT",
		"LEDGER_CURRENCY", "LEDGER_CACHE_TTL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Backend != BackendFile {
			t.Errorf("Load() Backend = %v, want file", cfg.Backend)
		}
		if cfg.FilePath != "./data/ledger.json" {
			t.Errorf("Load() FilePath = %v, want ./data/ledger.json", cfg.FilePath)
		}
		if cfg.DBPath != "./data/ledger.db" {
			t.Errorf("Load() DBPath = %v, want ./data/ledger.db", cfg.DBPath)
		}
		if cfg.SlotName != "transactions" {
			t.Errorf("Load() SlotName = %v, want transactions", cfg.SlotName)
		}
		if cfg.Currency != "R$" {
			t.Errorf("Load() Currency = %v, want R$", cfg.Currency)
		}
		if cfg.CacheTTL != time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 1m", cfg.CacheTTL)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("LEDGER_BACKEND", "sqlite")
		t.Setenv("LEDGER_DB_PATH", "/tmp/test.db")
		t.Setenv("LEDGER_SLOT", "household")
		t.Setenv("LEDGER_CURRENCY", "€")
		t.Setenv("LEDGER_CACHE_TTL", "45s")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.Backend != BackendSQLite {
			t.Errorf("Load() Backend = %v, want sqlite", cfg.Backend)
		}
		if cfg.DBPath != "/tmp/test.db" {
			t.Errorf("Load() DBPath = %v, want /tmp/test.db", cfg.DBPath)
		}
		if cfg.SlotName != "household" {
			t.Errorf("Load() SlotName = %v, want household", cfg.SlotName)
		}
		if cfg.Currency != "€" {
			t.Errorf("Load() Currency = %v, want €", cfg.Currency)
		}
		if cfg.CacheTTL != 45*time.Second {
			t.Errorf("Load() CacheTTL = %v, want 45s", cfg.CacheTTL)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})

	t.Run("invalid duration uses default", func(t *testing.T) {
		t.Setenv("LEDGER_CACHE_TTL", "soon")

		if cfg := Load(); cfg.CacheTTL != time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 1m (default for invalid input)", cfg.CacheTTL)
		}
	})
}
