package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ledger/internal/config"
	"ledger/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("nil config must fail")
	}
	if _, err := FromAppConfig(&config.Config{Backend: "sheets"}); err == nil {
		t.Fatal("unknown backend must fail")
	}

	got, err := FromAppConfig(&config.Config{
		Backend:  "sqlite",
		FilePath: "ledger.json",
		DBPath:   "ledger.db",
		SlotName: "household",
	})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if got.Type != SQLiteBackend || got.SQLiteDBPath != "ledger.db" || got.SlotName != "household" {
		t.Fatalf("unexpected backend config %+v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"memory", Config{Type: MemoryBackend}, ""},
		{"file", Config{Type: FileBackend, FilePath: "x.json"}, ""},
		{"file without path", Config{Type: FileBackend}, "file path is required"},
		{"sqlite without path", Config{Type: SQLiteBackend}, "SQLite database path is required"},
		{"unknown", Config{Type: "sheets"}, "invalid backend type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := NewFactory(nil)

	tests := []struct {
		name        string
		config      Config
		wantCleanup bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file", Config{Type: FileBackend, SlotName: "tx", FilePath: filepath.Join(dir, "ledger.json")}, false},
		{"sqlite", Config{Type: SQLiteBackend, SlotName: "tx", SQLiteDBPath: filepath.Join(dir, "ledger.db")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer res.Close()

			if (res.Cleanup != nil) != tt.wantCleanup {
				t.Errorf("cleanup present = %v, want %v", res.Cleanup != nil, tt.wantCleanup)
			}
			want := tt.config.SlotName
			if want == "" {
				want = storage.DefaultSlotName
			}
			if res.Slot.Name() != want {
				t.Errorf("slot name = %q, want %q", res.Slot.Name(), want)
			}

			if err := res.Slot.Write(ctx, []byte(`[]`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			data, err := res.Slot.Read(ctx)
			if err != nil || string(data) != `[]` {
				t.Fatalf("read back %q, %v", data, err)
			}
		})
	}

	if _, err := f.CreateBackend(ctx, Config{Type: "sheets"}); err == nil {
		t.Fatal("unknown backend must fail")
	}
}
