package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"1000", 100000, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.004", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyJSONNumber(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 123456})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "1234.56" {
		t.Fatalf("expected bare number 1234.56, got %s", b)
	}

	var m Money
	if err := json.Unmarshal([]byte(`300`), &m); err != nil || m.Cents != 30000 {
		t.Fatalf("unexpected decode: %+v err=%v", m, err)
	}
	if err := json.Unmarshal([]byte(`"12.5"`), &m); err != nil || m.Cents != 1250 {
		t.Fatalf("quoted decimal should decode: %+v err=%v", m, err)
	}
	if err := json.Unmarshal([]byte(`"x"`), &m); err == nil {
		t.Fatalf("expected error for non numeric amount")
	}
}
