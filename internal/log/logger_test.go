package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerComponentAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentStore, Output: &buf})

	l.Info("hidden")
	l.Warn("visible", FieldTransactionID, int64(7))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "component=store") || !strings.Contains(out, "transaction_id=7") {
		t.Fatalf("missing fields: %s", out)
	}

	buf.Reset()
	l.WithComponent(ComponentCache).Slog().Error("boom")
	if !strings.Contains(buf.String(), "component=cache") {
		t.Fatalf("Slog must carry the component: %s", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithOperation(OpAdd).
		WithError(errors.New("disk full")).
		WithTransaction(1, "Pay", 100000, "salary", "income")
	if f[FieldOperation] != OpAdd || f[FieldError] != "disk full" || f[FieldKind] != "income" {
		t.Fatalf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice must pair every key")
	}
	if _, ok := NewFields().WithError(nil)[FieldError]; ok {
		t.Fatalf("nil error must not add a field")
	}
}
