package app

import (
	"context"
	"errors"
	"time"

	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/present"
)

func (a *App) renderAll(ctx context.Context) error {
	return errors.Join(
		a.renderTotals(ctx),
		a.renderTable(ctx),
		a.renderCharts(ctx, a.now()),
	)
}

func (a *App) renderTotals(ctx context.Context) error {
	d := a.dashboardAt(a.now())
	return a.step(ctx, "totals", a.presenter.SetTotals(d.Totals))
}

func (a *App) renderTable(ctx context.Context) error {
	rows := ledger.View(a.store.List(), a.filter)
	if len(rows) == 0 {
		return a.step(ctx, "empty_state", a.presenter.SetEmptyState(true))
	}
	return errors.Join(
		a.step(ctx, "empty_state", a.presenter.SetEmptyState(false)),
		a.step(ctx, "table", a.presenter.RenderTable(rows)),
	)
}

// renderCharts draws the three charts, or the placeholder while the ledger is
// empty and the presenter offers one.
func (a *App) renderCharts(ctx context.Context, now time.Time) error {
	if a.store.Len() == 0 {
		if ph, ok := a.presenter.(present.ChartPlaceholder); ok {
			return a.step(ctx, "charts", ph.RenderChartsPlaceholder())
		}
	}

	d := a.dashboardAt(now)
	cats := d.Categories
	if cats == nil {
		b := ledger.CategoryBreakdown(a.store.List())
		cats = &b
	}
	return errors.Join(
		a.step(ctx, "category_chart", a.presenter.RenderCategoryChart(*cats)),
		a.step(ctx, "monthly_chart", a.presenter.RenderMonthlyChart(d.Monthly)),
		a.step(ctx, "balance_chart", a.presenter.RenderBalanceChart(d.Balance)),
	)
}

// step swallows a missing surface so the remaining render steps still run.
func (a *App) step(ctx context.Context, name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, present.ErrMissingSurface):
		a.logger.DebugContext(ctx, "Render step skipped",
			log.FieldStep, name,
			log.FieldOperation, log.OpRender)
		return nil
	default:
		a.logger.WarnContext(ctx, "Render step failed",
			log.FieldStep, name,
			log.FieldError, err)
		return err
	}
}
