package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"ledger/internal/log"
)

// SQLiteSlot keeps the blob as one row of the slots table. Each write bumps
// the row version; concurrent writers resolve as last-write-wins.
type SQLiteSlot struct {
	db     *sql.DB
	name   string
	logger *slog.Logger
}

// NewSQLiteSlot opens dbPath, migrates it and binds the slot to name.
// A nil logger falls back to slog.Default().
func NewSQLiteSlot(name, dbPath string, logger *slog.Logger) (*SQLiteSlot, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite database path cannot be empty")
	}
	if name == "" {
		name = DefaultSlotName
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("SQLite slot ready", log.FieldSlot, name, log.FieldPath, dbPath)
	return &SQLiteSlot{db: db, name: name, logger: logger}, nil
}

func (s *SQLiteSlot) Name() string { return s.name }

func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE name = ?`, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return payload, nil
}

func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (name, payload) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			version = slots.version + 1,
			updated_at = CURRENT_TIMESTAMP`,
		s.name, data)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}

	s.logger.DebugContext(ctx, "Slot written to SQLite", log.FieldSlot, s.name, "bytes", len(data))
	return nil
}

// Version returns how many times the slot has been written, 0 if never.
func (s *SQLiteSlot) Version(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT version FROM slots WHERE name = ?`, s.name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read slot version: %w", err)
	}
	return v, nil
}
