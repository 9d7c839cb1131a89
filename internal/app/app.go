// Package app wires the record store, the aggregates and a presenter into the
// user actions of the ledger screen.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger/internal/cache"
	"ledger/internal/core"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/present"
)

// ErrNotReady is returned by every action called before Init.
var ErrNotReady = errors.New("app not initialised")

const (
	MsgAdded         = "Transaction added!"
	MsgRemoved       = "Transaction removed!"
	MsgChartsUpdated = "Charts updated!"
	MsgInvalidForm   = "Fill in every field correctly!"
	MsgSaveFailed    = "Could not save your changes."
)

// Form is the input collaborator holding the add-transaction fields.
type Form interface {
	Values() core.Draft
	Reset()
	SetDefaultDate(d core.Date)
	FocusFirstField()
}

// App is the single context that owns the ledger screen. It is not safe for
// concurrent use; actions are expected one at a time.
type App struct {
	store      *ledger.Store
	presenter  present.Presenter
	form       Form
	logger     *log.Logger
	now        func() time.Time
	dashboards cache.Cache[ledger.Dashboard]
	filter     ledger.KindFilter
	ready      bool
}

type Option func(*App)

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l.WithComponent(log.ComponentApp) }
}

// WithFilter sets the kind filter the table starts with.
func WithFilter(f ledger.KindFilter) Option {
	return func(a *App) {
		if f != "" {
			a.filter = f
		}
	}
}

// WithDashboardCache replaces the default dashboard memo.
func WithDashboardCache(c cache.Cache[ledger.Dashboard]) Option {
	return func(a *App) { a.dashboards = c }
}

func New(store *ledger.Store, p present.Presenter, form Form, opts ...Option) *App {
	a := &App{
		store:      store,
		presenter:  p,
		form:       form,
		logger:     log.Discard(),
		now:        time.Now,
		dashboards: cache.NewLRUCache[ledger.Dashboard](8, time.Minute),
		filter:     ledger.FilterAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init loads the ledger, primes the form and draws every view. Render
// failures other than a missing surface are returned, but the app is ready
// either way.
func (a *App) Init(ctx context.Context) error {
	records := a.store.Load(ctx)
	a.dashboards.Purge()
	a.ready = true
	a.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldCount, len(records),
		log.FieldRevision, a.store.Revision())

	if a.form != nil {
		a.form.SetDefaultDate(a.today())
	}
	return a.renderAll(ctx)
}

// Ready reports whether Init has run.
func (a *App) Ready() bool { return a.ready }

// Filter returns the kind filter currently applied to the table.
func (a *App) Filter() ledger.KindFilter { return a.filter }

// SubmitForm adds the transaction described by the form. A rejected draft
// leaves the form untouched so the user can correct it.
func (a *App) SubmitForm(ctx context.Context) (core.Transaction, error) {
	if !a.ready {
		return core.Transaction{}, ErrNotReady
	}
	if a.form == nil {
		return core.Transaction{}, fmt.Errorf("submit: %w", present.ErrMissingSurface)
	}

	t, err := a.store.Add(ctx, a.form.Values())
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			a.logger.DebugContext(ctx, "Rejected form input",
				log.FieldOperation, log.OpValidate,
				log.FieldError, err)
			a.presenter.ShowNotification(MsgInvalidForm, present.NotifyError)
			return core.Transaction{}, err
		}
		a.logger.ErrorContext(ctx, "Failed to add transaction", log.FieldError, err)
		a.presenter.ShowNotification(MsgSaveFailed, present.NotifyError)
		return core.Transaction{}, err
	}

	a.form.Reset()
	a.form.SetDefaultDate(a.today())
	a.form.FocusFirstField()
	a.refresh(ctx)
	a.presenter.ShowNotification(MsgAdded, present.NotifySuccess)
	return t, nil
}

// ApplyFilter redraws the table with only the records of the chosen kind.
func (a *App) ApplyFilter(ctx context.Context, f ledger.KindFilter) error {
	if !a.ready {
		return ErrNotReady
	}
	if f == "" {
		f = ledger.FilterAll
	}
	a.filter = f
	a.logger.DebugContext(ctx, "Filter applied", log.FieldFilter, string(f))
	return a.renderTable(ctx)
}

// RemoveTransaction asks the presenter for confirmation and deletes the record.
// It reports false when the user declines or the id does not exist.
func (a *App) RemoveTransaction(ctx context.Context, id int64) (bool, error) {
	if !a.ready {
		return false, ErrNotReady
	}

	target := core.Transaction{ID: id}
	for _, t := range a.store.List() {
		if t.ID == id {
			target = t
			break
		}
	}
	confirm := ledger.ConfirmFunc(func(string) bool {
		return a.presenter.RequestDeleteConfirmation(target)
	})

	removed, err := a.store.Remove(ctx, id, confirm)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to remove transaction",
			log.FieldTransactionID, id,
			log.FieldError, err)
		a.presenter.ShowNotification(MsgSaveFailed, present.NotifyError)
		return false, err
	}
	if !removed {
		return false, nil
	}

	a.refresh(ctx)
	a.presenter.ShowNotification(MsgRemoved, present.NotifySuccess)
	return true, nil
}

// RefreshCharts redraws the charts as of now.
func (a *App) RefreshCharts(ctx context.Context, now time.Time) error {
	if !a.ready {
		return ErrNotReady
	}
	err := a.renderCharts(ctx, now)
	a.presenter.ShowNotification(MsgChartsUpdated, present.NotifySuccess)
	return err
}

// Dashboard returns the aggregates for the current ledger as of today.
// The result is a copy and may be modified freely.
func (a *App) Dashboard() (ledger.Dashboard, error) {
	if !a.ready {
		return ledger.Dashboard{}, ErrNotReady
	}
	return a.dashboardAt(a.now()).Clone(), nil
}

// Rows returns the records the table currently shows, in display order.
func (a *App) Rows() ([]core.Transaction, error) {
	if !a.ready {
		return nil, ErrNotReady
	}
	return ledger.View(a.store.List(), a.filter), nil
}

func (a *App) dashboardAt(now time.Time) ledger.Dashboard {
	key := fmt.Sprintf("%d:%s", a.store.Revision(), core.DateOf(now).String())
	if d, ok := a.dashboards.Get(key); ok {
		return d
	}
	d := ledger.Summarize(a.store.List(), now)
	a.dashboards.Set(key, d)
	a.logger.Debug("Dashboard computed", log.FieldCacheKey, key)
	return d
}

func (a *App) today() core.Date {
	return core.DateOf(a.now())
}

// refresh redraws every view after a mutation; failures are logged only.
func (a *App) refresh(ctx context.Context) {
	if err := a.renderAll(ctx); err != nil {
		a.logger.WarnContext(ctx, "Failed to refresh views", log.FieldError, err)
	}
}
