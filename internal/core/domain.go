package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	Food      Category = "food"
	Transport Category = "transport"
	Housing   Category = "housing"
	Leisure   Category = "leisure"
	Health    Category = "health"
	Education Category = "education"
	Salary    Category = "salary"
	Other     Category = "other"
)

// DateLayout is the calendar-date format used for occurredOn.
const DateLayout = "2006-01-02"

type (
	// Kind tells whether a transaction brings money in or takes it out.
	Kind string

	// Category is an open tag: values outside the known set pass through unchanged.
	Category string

	Money struct {
		Cents int64
	}

	// Transaction is one ledger record. Records are never edited once created.
	Transaction struct {
		ID          int64     `json:"id"`
		Description string    `json:"description"`
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Kind        Kind      `json:"kind"`
		OccurredOn  Date      `json:"occurredOn"`
		RecordedAt  time.Time `json:"recordedAt"`
	}

	// Draft holds the raw add-transaction input exactly as read from a form.
	Draft struct {
		Description string
		Amount      string
		Category    string
		Kind        string
		Date        string
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidDate      = errors.New("invalid date")
)

// ValidationError names the draft field that failed and wraps the sentinel describing why.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var categoryLabels = map[Category]string{
	Food:      "Food",
	Transport: "Transport",
	Housing:   "Housing",
	Leisure:   "Leisure",
	Health:    "Health",
	Education: "Education",
	Salary:    "Salary",
	Other:     "Other",
}

// Categories returns the known categories in display order.
func Categories() []Category {
	return []Category{Food, Transport, Housing, Leisure, Health, Education, Salary, Other}
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Known reports whether c belongs to the predefined set.
func (c Category) Known() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Sign returns +1 for income and -1 for expense.
func (k Kind) Sign() int64 {
	if k == Income {
		return 1
	}
	return -1
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the invariants every stored transaction must hold.
// An unparsable OccurredOn is tolerated here: it only excludes the record from date-based views.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if err := t.Amount.Validate(); err != nil {
		return &ValidationError{Field: "amount", Err: err}
	}
	if strings.TrimSpace(string(t.Category)) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	if !t.Kind.Valid() {
		return &ValidationError{Field: "kind", Err: ErrInvalidKind}
	}
	return nil
}

// Signed returns the amount in cents with the direction implied by Kind.
func (t Transaction) Signed() int64 {
	return t.Kind.Sign() * t.Amount.Cents
}

// Parse validates the draft and builds a transaction without ID and RecordedAt.
func (d Draft) Parse() (Transaction, error) {
	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		return Transaction{}, &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	cents, err := ParseDecimalToCents(d.Amount)
	if err != nil {
		return Transaction{}, &ValidationError{Field: "amount", Err: err}
	}
	cat := strings.TrimSpace(d.Category)
	if cat == "" {
		return Transaction{}, &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return Transaction{}, &ValidationError{Field: "kind", Err: err}
	}
	date, err := ParseDate(d.Date)
	if err != nil {
		return Transaction{}, &ValidationError{Field: "date", Err: err}
	}
	return Transaction{
		Description: desc,
		Amount:      Money{Cents: cents},
		Category:    Category(cat),
		Kind:        kind,
		OccurredOn:  date,
	}, nil
}
