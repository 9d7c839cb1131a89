package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ledger/internal/app"
	"ledger/internal/cache"
	"ledger/internal/config"
	"ledger/internal/core"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/present"
)

type rootOptions struct {
	backend  string
	file     string
	db       string
	logLevel string
	envFile  string
}

// session is everything one command invocation needs.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	store  *ledger.Store
	close  func() error
}

// Execute runs the ledger command tree against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the ledger command and its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ledger",
		Short: "Track personal income and expenses",
		Long: `A personal finance ledger: record income and expense transactions, list
and filter them, and see totals, a category breakdown and trend charts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, present.Surfaces{
				Totals:  cmd.OutOrStdout(),
				Table:   cmd.OutOrStdout(),
				Charts:  cmd.OutOrStdout(),
				Notices: cmd.OutOrStdout(),
			}, nil, nil)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.backend, "backend", "", "Storage backend: file, sqlite or memory (overrides LEDGER_BACKEND)")
	pf.StringVar(&opts.file, "file", "", "Ledger JSON file for the file backend (overrides LEDGER_FILE_PATH)")
	pf.StringVar(&opts.db, "db", "", "SQLite database for the sqlite backend (overrides LEDGER_DB_PATH)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")
	pf.StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newRemoveCmd(opts),
		newChartsCmd(opts),
		newTotalsCmd(opts),
	)
	return root
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	form := &flagForm{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Example: `  ledger add -d "Market" -a 300 -c food -k expense
  ledger add -d "Salary" -a 1000,00 -c salary -k income --date 2024-01-05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			surfaces := present.Surfaces{Notices: cmd.OutOrStdout()}
			return opts.run(cmd, surfaces, form, func(ctx context.Context, a *app.App) error {
				_, err := a.SubmitForm(ctx)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&form.description, "description", "d", "", "What the transaction was")
	f.StringVarP(&form.amount, "amount", "a", "", "Positive amount, e.g. 12.50 or 12,50")
	f.StringVarP(&form.category, "category", "c", "", "Category, e.g. food, transport, housing, leisure, health, salary, other")
	f.StringVarP(&form.kind, "kind", "k", "", "income or expense")
	f.StringVar(&form.date, "date", "", "Date as YYYY-MM-DD (default today)")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kf, err := ledger.ParseKindFilter(filter)
			if err != nil {
				return err
			}
			surfaces := present.Surfaces{Table: cmd.OutOrStdout()}
			return opts.run(cmd, surfaces, nil, nil, app.WithFilter(kf))
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Show all, income or expense transactions")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a transaction after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			surfaces := present.Surfaces{Notices: cmd.OutOrStdout(), Prompt: cmd.InOrStdin()}
			return opts.runWith(cmd, surfaces, nil, yes, func(ctx context.Context, a *app.App) error {
				removed, err := a.RemoveTransaction(ctx, id)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing removed.")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newChartsCmd(opts *rootOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Redraw the category, monthly and balance charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			charts := &gate{w: cmd.OutOrStdout()}
			surfaces := present.Surfaces{Charts: charts, Notices: cmd.OutOrStdout()}
			return opts.run(cmd, surfaces, nil, func(ctx context.Context, a *app.App) error {
				now := time.Now()
				if at != "" {
					d, err := core.ParseDate(at)
					if err != nil {
						return fmt.Errorf("invalid --at date: %w", err)
					}
					now = d.Time
				}
				charts.open = true
				return a.RefreshCharts(ctx, now)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Draw the charts as of this date (YYYY-MM-DD)")
	return cmd
}

func newTotalsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show total income, expense and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, present.Surfaces{Totals: cmd.OutOrStdout()}, nil, nil)
		},
	}
}

type action func(ctx context.Context, a *app.App) error

func (o *rootOptions) run(cmd *cobra.Command, s present.Surfaces, form app.Form, act action, appOpts ...app.Option) error {
	return o.runWith(cmd, s, form, false, act, appOpts...)
}

// runWith opens a session, initialises the app on the given surfaces and runs act.
func (o *rootOptions) runWith(cmd *cobra.Command, s present.Surfaces, form app.Form, autoConfirm bool, act action, appOpts ...app.Option) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := o.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.close(); err != nil {
			sess.logger.Warn("Failed to close backend", log.FieldError, err)
		}
	}()

	var p present.Presenter = present.NewTerminal(s, sess.cfg.Currency)
	if autoConfirm {
		p = confirmAll{p}
	}

	appOpts = append([]app.Option{
		app.WithLogger(sess.logger),
		app.WithDashboardCache(cache.NewLRUCache[ledger.Dashboard](8, sess.cfg.CacheTTL)),
	}, appOpts...)
	a := app.New(sess.store, p, form, appOpts...)
	if err := a.Init(ctx); err != nil {
		return err
	}
	if act == nil {
		return nil
	}
	return act(ctx, a)
}

func (o *rootOptions) open(ctx context.Context, logOut io.Writer) (*session, error) {
	LoadEnvFile(o.envFile)

	cfg, err := LoadAndValidateConfig(func(c *config.Config) {
		if o.backend != "" {
			c.Backend = o.backend
		}
		if o.file != "" {
			c.FilePath = o.file
		}
		if o.db != "" {
			c.DBPath = o.db
		}
		if o.logLevel != "" {
			c.LogLevel = o.logLevel
		}
	})
	if err != nil {
		return nil, err
	}

	logger, err := SetupLogger(logOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, closeFn, err := InitStore(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: store, close: closeFn}, nil
}

// confirmAll answers yes to every delete confirmation.
type confirmAll struct {
	present.Presenter
}

func (confirmAll) RequestDeleteConfirmation(core.Transaction) bool { return true }

// RenderChartsPlaceholder keeps the wrapped presenter's placeholder reachable.
func (c confirmAll) RenderChartsPlaceholder() error {
	if ph, ok := c.Presenter.(present.ChartPlaceholder); ok {
		return ph.RenderChartsPlaceholder()
	}
	return fmt.Errorf("charts: %w", present.ErrMissingSurface)
}

// gate discards writes until opened.
type gate struct {
	w    io.Writer
	open bool
}

func (g *gate) Write(p []byte) (int, error) {
	if !g.open {
		return len(p), nil
	}
	return g.w.Write(p)
}
