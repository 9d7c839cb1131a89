// Package cli provides the ledger command tree and the process bootstrap
// helpers it shares: logging, .env loading and configuration.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"

	"ledger/internal/backend"
	"ledger/internal/config"
	"ledger/internal/ledger"
	"ledger/internal/log"
)

// SetupLogger initializes structured logging on w at the given level and
// installs it as the default logger.
func SetupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{Level: lvl, Component: log.ComponentCLI, Output: w})
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration, applies flag overrides and validates it.
func LoadAndValidateConfig(overrides func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	if overrides != nil {
		overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitStore opens the configured slot and wraps it in a record store.
// The returned cleanup releases the slot.
func InitStore(ctx context.Context, logger *log.Logger, cfg *config.Config) (*ledger.Store, func() error, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Slog()).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", bcfg.Type, err)
	}
	store := ledger.NewStore(res.Slot, ledger.WithLogger(logger.WithComponent(log.ComponentStore).Slog()))
	return store, res.Close, nil
}
