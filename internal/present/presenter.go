// Package present defines what the application needs from a display surface
// and ships a terminal implementation of it.
package present

import (
	"errors"

	"ledger/internal/core"
)

// ErrMissingSurface is returned when the target of a render step does not exist.
// Callers skip that step and carry on with the others.
var ErrMissingSurface = errors.New("presentation surface not available")

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Presenter draws computed results. It never computes anything itself.
type Presenter interface {
	RenderTable(rows []core.Transaction) error
	SetEmptyState(visible bool) error
	SetTotals(t core.Totals) error
	RenderCategoryChart(b core.CategoryBreakdown) error
	RenderMonthlyChart(s core.MonthlySeries) error
	RenderBalanceChart(points []core.BalancePoint) error
	ShowNotification(message string, kind NotificationKind)
	RequestDeleteConfirmation(t core.Transaction) bool
}

// ChartPlaceholder is implemented by presenters that show a single hint in
// place of all charts while the ledger is empty.
type ChartPlaceholder interface {
	RenderChartsPlaceholder() error
}
