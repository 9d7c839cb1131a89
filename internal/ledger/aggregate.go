package ledger

import (
	"sort"
	"time"

	jnow "github.com/jinzhu/now"

	"ledger/internal/core"
)

const (
	// MonthWindow is the number of calendar months in the monthly comparison, current month included.
	MonthWindow = 6
	// DayWindow is the number of days in the balance trend, today included.
	DayWindow = 30
)

// Dashboard bundles every aggregate derived from one ledger state.
type Dashboard struct {
	Totals     core.Totals
	Categories *core.CategoryBreakdown
	Monthly    core.MonthlySeries
	Balance    []core.BalancePoint
}

// Clone returns a deep copy so callers can modify it without touching a memoised value.
func (d Dashboard) Clone() Dashboard {
	out := d
	if d.Categories != nil {
		cats := core.CategoryBreakdown{Items: append([]core.CategoryAmount(nil), d.Categories.Items...)}
		out.Categories = &cats
	}
	out.Monthly.Buckets = append([]core.MonthBucket(nil), d.Monthly.Buckets...)
	out.Balance = append([]core.BalancePoint(nil), d.Balance...)
	return out
}

// Summarize computes all aggregates over the full record list as of ref.
func Summarize(records []core.Transaction, ref time.Time) Dashboard {
	cats := CategoryBreakdown(records)
	return Dashboard{
		Totals:     ComputeTotals(records),
		Categories: &cats,
		Monthly:    MonthlySeries(records, ref),
		Balance:    BalanceSeries(records, ref),
	}
}

// ComputeTotals sums income and expense; balance is their difference.
func ComputeTotals(records []core.Transaction) core.Totals {
	var income, expense int64
	for _, t := range records {
		switch t.Kind {
		case core.Income:
			income += t.Amount.Cents
		case core.Expense:
			expense += t.Amount.Cents
		}
	}
	return core.Totals{
		Income:  core.Money{Cents: income},
		Expense: core.Money{Cents: expense},
		Balance: core.Money{Cents: income - expense},
	}
}

// CategoryBreakdown groups expenses by category, largest first.
func CategoryBreakdown(records []core.Transaction) core.CategoryBreakdown {
	sums := make(map[core.Category]int64)
	for _, t := range records {
		if t.Kind != core.Expense {
			continue
		}
		sums[t.Category] += t.Amount.Cents
	}

	items := make([]core.CategoryAmount, 0, len(sums))
	for cat, cents := range sums {
		if cents == 0 {
			continue
		}
		items = append(items, core.CategoryAmount{Category: cat, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Amount.Cents != items[j].Amount.Cents {
			return items[i].Amount.Cents > items[j].Amount.Cents
		}
		return items[i].Category < items[j].Category
	})
	return core.CategoryBreakdown{Items: items}
}

// MonthlySeries sums income and expense per calendar month for the
// MonthWindow months ending with ref's month, oldest first. Empty months are zero.
func MonthlySeries(records []core.Transaction, ref time.Time) core.MonthlySeries {
	current := jnow.With(core.DateOf(ref).Time).BeginningOfMonth()

	buckets := make([]core.MonthBucket, MonthWindow)
	for i := range buckets {
		start := current.AddDate(0, i-(MonthWindow-1), 0)
		end := jnow.With(start).EndOfMonth()

		b := core.MonthBucket{
			Year:  start.Year(),
			Month: int(start.Month()),
			Label: start.Month().String()[:3],
		}
		for _, t := range records {
			d := t.OccurredOn
			if !d.Valid() || d.Time.Before(start) || d.Time.After(end) {
				continue
			}
			switch t.Kind {
			case core.Income:
				b.Income.Cents += t.Amount.Cents
			case core.Expense:
				b.Expense.Cents += t.Amount.Cents
			}
		}
		buckets[i] = b
	}
	return core.MonthlySeries{Buckets: buckets}
}

// BalanceSeries returns DayWindow points ending today (ref's calendar date), oldest first.
// Each point is the balance of every record dated on or before that day.
// Records with an unparsable date are left out.
func BalanceSeries(records []core.Transaction, ref time.Time) []core.BalancePoint {
	today := core.DateOf(ref)
	first := today.AddDays(-(DayWindow - 1))

	var opening int64
	daily := make(map[int64]int64)
	for _, t := range records {
		d := t.OccurredOn
		if !d.Valid() || d.Time.After(today.Time) {
			continue
		}
		if d.Time.Before(first.Time) {
			opening += t.Signed()
			continue
		}
		daily[d.Unix()] += t.Signed()
	}

	points := make([]core.BalancePoint, DayWindow)
	running := opening
	for i := range points {
		day := first.AddDays(i)
		running += daily[day.Unix()]
		points[i] = core.BalancePoint{Date: day, Balance: core.Money{Cents: running}}
	}
	return points
}
