package present

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ledger/internal/core"
)

const (
	barWidth     = 30
	emptyTable   = "No transactions found."
	noExpenses   = "No expense data"
	noChartData  = "Add transactions to see charts"
	sparkLevels  = "▁▂▃▄▅▆▇█"
	descMaxWidth = 40
)

var (
	incomeColor  = lipgloss.Color("#2ecc71")
	expenseColor = lipgloss.Color("#e74c3c")
	accentColor  = lipgloss.Color("#3498db")
	mutedColor   = lipgloss.Color("#999999")
)

// Surfaces are the output targets of the terminal presenter. A nil writer
// means the surface is not present on this view.
type Surfaces struct {
	Table   io.Writer
	Totals  io.Writer
	Charts  io.Writer
	Notices io.Writer
	// Prompt supplies answers to confirmation questions.
	Prompt io.Reader
}

// Terminal renders ledger views as styled text.
type Terminal struct {
	s        Surfaces
	currency string
	answers  *bufio.Reader
}

// NewTerminal creates a terminal presenter; an empty currency uses DefaultCurrency.
func NewTerminal(s Surfaces, currency string) *Terminal {
	if currency == "" {
		currency = DefaultCurrency
	}
	t := &Terminal{s: s, currency: currency}
	if s.Prompt != nil {
		t.answers = bufio.NewReader(s.Prompt)
	}
	return t
}

func (t *Terminal) RenderTable(rows []core.Transaction) error {
	if t.s.Table == nil {
		return fmt.Errorf("table: %w", ErrMissingSurface)
	}
	r := lipgloss.NewRenderer(t.s.Table)
	income := r.NewStyle().Foreground(incomeColor)
	expense := r.NewStyle().Foreground(expenseColor)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(mutedColor)).
		Headers("ID", "Date", "Description", "Category", "Amount")
	for _, tx := range rows {
		tbl.Row(
			strconv.FormatInt(tx.ID, 10),
			FormatDate(tx.OccurredOn),
			truncate(tx.Description, descMaxWidth),
			tx.Category.Label(),
			SignedMoney(t.currency, tx),
		)
	}
	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row < 0 || row >= len(rows) || col != 4 {
			return r.NewStyle().Padding(0, 1)
		}
		if rows[row].Kind == core.Expense {
			return expense.Padding(0, 1)
		}
		return income.Padding(0, 1)
	})

	_, err := fmt.Fprintln(t.s.Table, tbl.Render())
	return err
}

func (t *Terminal) SetEmptyState(visible bool) error {
	if t.s.Table == nil {
		return fmt.Errorf("empty state: %w", ErrMissingSurface)
	}
	if !visible {
		return nil
	}
	r := lipgloss.NewRenderer(t.s.Table)
	_, err := fmt.Fprintln(t.s.Table, r.NewStyle().Foreground(mutedColor).Render(emptyTable))
	return err
}

func (t *Terminal) SetTotals(tot core.Totals) error {
	if t.s.Totals == nil {
		return fmt.Errorf("totals: %w", ErrMissingSurface)
	}
	r := lipgloss.NewRenderer(t.s.Totals)
	balance := r.NewStyle().Bold(true).Foreground(incomeColor)
	if tot.Balance.Cents < 0 {
		balance = balance.Foreground(expenseColor)
	}

	lines := []string{
		fmt.Sprintf("Income:  %s", r.NewStyle().Foreground(incomeColor).Render(FormatMoney(t.currency, tot.Income))),
		fmt.Sprintf("Expense: %s", r.NewStyle().Foreground(expenseColor).Render(FormatMoney(t.currency, tot.Expense))),
		fmt.Sprintf("Balance: %s", balance.Render(FormatMoney(t.currency, tot.Balance))),
	}
	_, err := fmt.Fprintln(t.s.Totals, strings.Join(lines, "\n"))
	return err
}

func (t *Terminal) RenderCategoryChart(b core.CategoryBreakdown) error {
	if t.s.Charts == nil {
		return fmt.Errorf("category chart: %w", ErrMissingSurface)
	}
	r := lipgloss.NewRenderer(t.s.Charts)
	var sb strings.Builder
	sb.WriteString(r.NewStyle().Bold(true).Render("Expenses by category") + "\n")

	if b.Empty() {
		sb.WriteString(r.NewStyle().Foreground(mutedColor).Render(noExpenses) + "\n")
		_, err := io.WriteString(t.s.Charts, sb.String())
		return err
	}

	total := b.Total().Cents
	var max int64
	width := 0
	for _, it := range b.Items {
		if it.Amount.Cents > max {
			max = it.Amount.Cents
		}
		if w := len([]rune(it.Category.Label())); w > width {
			width = w
		}
	}
	bar := r.NewStyle().Foreground(expenseColor)
	for _, it := range b.Items {
		pct := float64(it.Amount.Cents) * 100 / float64(total)
		fmt.Fprintf(&sb, "%-*s %s %s (%.1f%%)\n",
			width, it.Category.Label(),
			bar.Render(bars(it.Amount.Cents, max)),
			FormatMoney(t.currency, it.Amount), pct)
	}
	_, err := io.WriteString(t.s.Charts, sb.String())
	return err
}

func (t *Terminal) RenderMonthlyChart(s core.MonthlySeries) error {
	if t.s.Charts == nil {
		return fmt.Errorf("monthly chart: %w", ErrMissingSurface)
	}
	r := lipgloss.NewRenderer(t.s.Charts)
	inc := r.NewStyle().Foreground(incomeColor)
	exp := r.NewStyle().Foreground(expenseColor)

	var max int64
	for _, b := range s.Buckets {
		max = maxOf(max, b.Income.Cents, b.Expense.Cents)
	}

	var sb strings.Builder
	sb.WriteString(r.NewStyle().Bold(true).Render("Income vs expense by month") + "\n")
	for _, b := range s.Buckets {
		fmt.Fprintf(&sb, "%s %d  %s %s\n", b.Label, b.Year, inc.Render("+"+pad(bars(b.Income.Cents, max))), FormatMoney(t.currency, b.Income))
		fmt.Fprintf(&sb, "          %s %s\n", exp.Render("-"+pad(bars(b.Expense.Cents, max))), FormatMoney(t.currency, b.Expense))
	}
	_, err := io.WriteString(t.s.Charts, sb.String())
	return err
}

func (t *Terminal) RenderBalanceChart(points []core.BalancePoint) error {
	if t.s.Charts == nil {
		return fmt.Errorf("balance chart: %w", ErrMissingSurface)
	}
	r := lipgloss.NewRenderer(t.s.Charts)
	var sb strings.Builder
	sb.WriteString(r.NewStyle().Bold(true).Render("Cumulative balance") + "\n")
	if len(points) == 0 {
		sb.WriteString(r.NewStyle().Foreground(mutedColor).Render("No data to show") + "\n")
		_, err := io.WriteString(t.s.Charts, sb.String())
		return err
	}

	first, last := points[0], points[len(points)-1]
	fmt.Fprintf(&sb, "%s %s %s\n",
		first.Date.Format("02/01"),
		r.NewStyle().Foreground(accentColor).Render(Sparkline(points)),
		last.Date.Format("02/01"))
	fmt.Fprintf(&sb, "Balance: %s\n", FormatMoney(t.currency, last.Balance))
	_, err := io.WriteString(t.s.Charts, sb.String())
	return err
}

// RenderChartsPlaceholder replaces every chart with a hint when the ledger is empty.
func (t *Terminal) RenderChartsPlaceholder() error {
	if t.s.Charts == nil {
		return fmt.Errorf("charts: %w", ErrMissingSurface)
	}
	r := lipgloss.NewRenderer(t.s.Charts)
	_, err := fmt.Fprintln(t.s.Charts, r.NewStyle().Foreground(mutedColor).Render(noChartData))
	return err
}

func (t *Terminal) ShowNotification(message string, kind NotificationKind) {
	if t.s.Notices == nil {
		return
	}
	r := lipgloss.NewRenderer(t.s.Notices)
	style := r.NewStyle().Bold(true).Foreground(incomeColor)
	mark := "✔"
	if kind == NotifyError {
		style = style.Foreground(expenseColor)
		mark = "✖"
	}
	fmt.Fprintln(t.s.Notices, style.Render(mark+" "+message))
}

// RequestDeleteConfirmation asks on the notice surface and reads the answer
// from Prompt. Only y or yes confirms.
func (t *Terminal) RequestDeleteConfirmation(tx core.Transaction) bool {
	if t.answers == nil {
		return false
	}
	if t.s.Notices != nil {
		fmt.Fprintf(t.s.Notices, "Delete %q (%s on %s)? [y/N]: ",
			tx.Description, SignedMoney(t.currency, tx), FormatDate(tx.OccurredOn))
	}
	line, err := t.answers.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Sparkline maps balances onto eight block heights between the window min and max.
func Sparkline(points []core.BalancePoint) string {
	if len(points) == 0 {
		return ""
	}
	levels := []rune(sparkLevels)
	lo, hi := points[0].Balance.Cents, points[0].Balance.Cents
	for _, p := range points {
		lo = min(lo, p.Balance.Cents)
		hi = maxOf(hi, p.Balance.Cents)
	}
	out := make([]rune, len(points))
	for i, p := range points {
		idx := 0
		if hi > lo {
			idx = int(math.Round(float64(p.Balance.Cents-lo) * float64(len(levels)-1) / float64(hi-lo)))
		}
		out[i] = levels[idx]
	}
	return string(out)
}

func bars(v, max int64) string {
	if max <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(float64(v) * barWidth / float64(max)))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func pad(s string) string {
	return s + strings.Repeat(" ", barWidth-len([]rune(s)))
}

func maxOf(vs ...int64) int64 {
	var m int64
	for i, v := range vs {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
