package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDateDropsTimeOfDay(t *testing.T) {
	d, err := ParseDate("2024-01-10T23:59:00-03:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Fatalf("expected 2024-01-10, got %s", d)
	}
	if _, err := ParseDate("10/01/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateKeepsUnparsableText(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err != nil {
		t.Fatalf("unparsable date must not fail decoding: %v", err)
	}
	if d.Valid() {
		t.Fatalf("expected invalid date")
	}
	b, _ := json.Marshal(d)
	if string(b) != `"not a date"` {
		t.Fatalf("expected raw text round trip, got %s", b)
	}
}

func TestDraftParse(t *testing.T) {
	good := Draft{Description: " Lunch ", Amount: "12,50", Category: "food", Kind: "expense", Date: "2024-01-10"}
	tx, err := good.Parse()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Description != "Lunch" || tx.Amount.Cents != 1250 || tx.Kind != Expense || tx.OccurredOn.String() != "2024-01-10" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}

	bads := []struct {
		draft Draft
		field string
		err   error
	}{
		{Draft{Description: "", Amount: "50", Category: "food", Kind: "expense", Date: "2024-01-10"}, "description", ErrEmptyDescription},
		{Draft{Description: "a", Amount: "0", Category: "food", Kind: "expense", Date: "2024-01-10"}, "amount", ErrInvalidAmount},
		{Draft{Description: "a", Amount: "abc", Category: "food", Kind: "expense", Date: "2024-01-10"}, "amount", ErrInvalidAmount},
		{Draft{Description: "a", Amount: "1", Category: " ", Kind: "expense", Date: "2024-01-10"}, "category", ErrEmptyCategory},
		{Draft{Description: "a", Amount: "1", Category: "food", Kind: "", Date: "2024-01-10"}, "kind", ErrInvalidKind},
		{Draft{Description: "a", Amount: "1", Category: "food", Kind: "gift", Date: "2024-01-10"}, "kind", ErrInvalidKind},
		{Draft{Description: "a", Amount: "1", Category: "food", Kind: "income", Date: ""}, "date", ErrInvalidDate},
		{Draft{Description: "a", Amount: "1", Category: "food", Kind: "income", Date: "0001-01-01"}, "date", ErrInvalidDate},
		{Draft{Description: "a", Amount: "1", Category: "food", Kind: "income", Date: "0001-01-01T00:00:00Z"}, "date", ErrInvalidDate},
	}
	for i, tc := range bads {
		_, err := tc.draft.Parse()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d expected ValidationError, got %v", i, err)
		}
		if verr.Field != tc.field || !errors.Is(err, tc.err) {
			t.Fatalf("case %d expected %s/%v, got %s/%v", i, tc.field, tc.err, verr.Field, verr.Err)
		}
	}
}

func TestCategoryLabelPassesUnknownThrough(t *testing.T) {
	if Food.Label() != "Food" {
		t.Fatalf("unexpected label %q", Food.Label())
	}
	if Category("pets").Label() != "pets" {
		t.Fatalf("unknown category must pass through")
	}
	if Category("pets").Known() {
		t.Fatalf("pets is not a known category")
	}
}

func TestTransactionJSONShape(t *testing.T) {
	tx := Transaction{
		ID:          1704844800000,
		Description: "Market",
		Amount:      Money{Cents: 30000},
		Category:    Food,
		Kind:        Expense,
		OccurredOn:  NewDate(2024, 1, 10),
		RecordedAt:  time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1704844800000,"description":"Market","amount":300.00,"category":"food","kind":"expense","occurredOn":"2024-01-10","recordedAt":"2024-01-10T12:00:00Z"}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", b, want)
	}
}
