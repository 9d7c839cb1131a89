package core

// Totals are the running sums over the whole ledger. Balance may be negative.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// CategoryBreakdown holds expense totals per category; categories without
// expenses never appear. An empty breakdown is a computed result meaning
// "no expense data", not a missing one.
type CategoryBreakdown struct {
	Items []CategoryAmount
}

// Empty reports whether there were no expenses to group.
func (b CategoryBreakdown) Empty() bool {
	return len(b.Items) == 0
}

// Map returns category -> amount.
func (b CategoryBreakdown) Map() map[Category]Money {
	out := make(map[Category]Money, len(b.Items))
	for _, it := range b.Items {
		out[it.Category] = it.Amount
	}
	return out
}

// Total sums every category.
func (b CategoryBreakdown) Total() Money {
	var total Money
	for _, it := range b.Items {
		total = total.Add(it.Amount)
	}
	return total
}

// MonthBucket is one calendar month of the trailing monthly comparison.
type MonthBucket struct {
	Year    int
	Month   int // 1-12
	Label   string
	Income  Money
	Expense Money
}

// MonthlySeries is fixed-length and zero filled, oldest month first.
type MonthlySeries struct {
	Buckets []MonthBucket
}

// Labels returns the month labels aligned with IncomeSeries and ExpenseSeries.
func (s MonthlySeries) Labels() []string {
	out := make([]string, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = b.Label
	}
	return out
}

func (s MonthlySeries) IncomeSeries() []Money {
	out := make([]Money, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = b.Income
	}
	return out
}

func (s MonthlySeries) ExpenseSeries() []Money {
	out := make([]Money, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = b.Expense
	}
	return out
}

// BalancePoint is the cumulative balance at the end of Date.
type BalancePoint struct {
	Date    Date
	Balance Money
}
