package present

import (
	"strings"

	"github.com/dustin/go-humanize"

	"ledger/internal/core"
)

// DefaultCurrency is the symbol printed before amounts.
const DefaultCurrency = "R$"

// moneyFormat groups thousands with dots and uses a decimal comma.
const moneyFormat = "#.###,##"

// FormatMoney renders an amount as "R$ 1.234,56"; negative amounts get a leading minus.
func FormatMoney(symbol string, m core.Money) string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	num := humanize.FormatFloat(moneyFormat, core.Money{Cents: cents}.Float())
	if symbol == "" {
		return sign + num
	}
	return sign + symbol + " " + num
}

// FormatDate renders a calendar date as DD/MM/YYYY, or the raw text for an unparsable one.
func FormatDate(d core.Date) string {
	if !d.Valid() {
		return d.String()
	}
	return d.Format("02/01/2006")
}

// SignedMoney prefixes the amount with + for income and - for expense.
func SignedMoney(symbol string, t core.Transaction) string {
	prefix := "+"
	if t.Kind == core.Expense {
		prefix = "-"
	}
	return prefix + " " + FormatMoney(symbol, t.Amount)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
