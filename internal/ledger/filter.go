package ledger

import (
	"fmt"
	"sort"
	"strings"

	"ledger/internal/core"
)

// KindFilter selects which records the table shows.
type KindFilter string

const (
	FilterAll     KindFilter = "all"
	FilterIncome  KindFilter = "income"
	FilterExpense KindFilter = "expense"
)

// ParseKindFilter maps user input to a filter; empty input means all.
func ParseKindFilter(s string) (KindFilter, error) {
	switch f := KindFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterIncome, FilterExpense:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter %q: must be one of all, income, expense", s)
	}
}

// Filter keeps the records whose kind matches f, preserving their order.
func Filter(records []core.Transaction, f KindFilter) []core.Transaction {
	if f == FilterAll || f == "" {
		return append([]core.Transaction(nil), records...)
	}
	out := make([]core.Transaction, 0, len(records))
	for _, t := range records {
		if string(t.Kind) == string(f) {
			out = append(out, t)
		}
	}
	return out
}

// SortForDisplay returns a copy ordered by occurredOn, most recent first.
// Ties keep their input order; undated records go last.
func SortForDisplay(records []core.Transaction) []core.Transaction {
	out := append([]core.Transaction(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].OccurredOn, out[j].OccurredOn
		if !a.Valid() || !b.Valid() {
			return a.Valid() && !b.Valid()
		}
		return a.Time.After(b.Time)
	})
	return out
}

// View is the table content for a filter. An empty result must be shown as the empty state.
func View(records []core.Transaction, f KindFilter) []core.Transaction {
	return SortForDisplay(Filter(records, f))
}
