package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

// MenuOptions configures where the menu writes files and how it shows money.
type MenuOptions struct {
	ExportCSVPath  string
	ChartPath      string
	CurrencySymbol string
}

// Menu is the interactive text front end over the expense service.
type Menu struct {
	svc    *services.ExpenseService
	in     *bufio.Scanner
	out    io.Writer
	opts   MenuOptions
	logger *applog.Logger
}

type menuAction func(ctx context.Context) error

func NewMenu(svc *services.ExpenseService, in io.Reader, out io.Writer, opts MenuOptions, logger *applog.Logger) *Menu {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Menu{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		opts:   opts,
		logger: logger.WithComponent(applog.ComponentCLI),
	}
}

// Run shows the menu until the user exits or input ends. Failed operations
// are reported and the loop carries on.
func (m *Menu) Run(ctx context.Context) error {
	actions := map[string]menuAction{
		"1": m.addExpense,
		"2": m.viewExpenses,
		"3": m.showSummary,
		"4": m.deleteExpense,
		"5": m.exportCSV,
		"6": m.showChart,
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		m.printMenu()
		choice, err := m.prompt("Choose an option (1-7): ")
		if err != nil {
			m.println("👋 Goodbye!")
			return nil
		}

		if choice == "7" {
			m.println("👋 Goodbye!")
			return nil
		}

		action, ok := actions[choice]
		if !ok {
			m.println("❌ Invalid choice. Try again.")
			m.println()
			continue
		}

		if err := action(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				m.println()
				m.println("👋 Goodbye!")
				return nil
			}
			m.reportError(err)
		}
	}
}

func (m *Menu) printMenu() {
	m.println()
	m.println("=== Personal Expense Tracker ===")
	m.println("1. Add Expense")
	m.println("2. View Expenses")
	m.println("3. Show Summary")
	m.println("4. Delete Expense")
	m.println("5. Export to CSV")
	m.println("6. Show Summary Chart")
	m.println("7. Exit")
}

func (m *Menu) addExpense(ctx context.Context) error {
	var in core.ExpenseInput
	var err error

	if in.Date, err = m.prompt("Enter date (YYYY-MM-DD) [Leave empty for today]: "); err != nil {
		return err
	}
	if in.Category, err = m.prompt("Enter category (e.g., Food, Rent, Transport): "); err != nil {
		return err
	}
	if in.Description, err = m.prompt("Enter description: "); err != nil {
		return err
	}
	if in.Amount, err = m.prompt("Enter amount: "); err != nil {
		return err
	}

	id, err := m.svc.CreateExpense(ctx, in)
	if err != nil {
		return err
	}
	m.printf("✅ Expense added (ID %d).\n\n", id)
	return nil
}

func (m *Menu) viewExpenses(ctx context.Context) error {
	expenses, err := m.svc.ListExpenses(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		m.println("No expenses found.")
		m.println()
		return nil
	}

	var total core.Amount
	m.println()
	m.println("📄 All Expenses:")
	m.println()
	m.printf("%-5s %-12s %-15s %-25s %-10s\n", "ID", "Date", "Category", "Description", "Amount")
	m.println(strings.Repeat("-", 70))
	for _, e := range expenses {
		m.printf("%-5d %-12s %-15s %-25s %-10s\n", e.ID, e.Date, e.Category, e.Description, e.Amount.Format())
		total = total.Add(e.Amount)
	}
	m.println(strings.Repeat("-", 70))
	m.printf("%-60s %s%s\n", "Total", m.opts.CurrencySymbol, total.Format())
	m.println()
	return nil
}

func (m *Menu) showSummary(ctx context.Context) error {
	raw, err := m.prompt("Period (all, week, month, year) [all]: ")
	if err != nil {
		return err
	}
	period, err := core.ParsePeriod(raw)
	if err != nil {
		return err
	}

	summary, err := m.svc.Summarize(ctx, period)
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		m.println("No expenses to summarize.")
		m.println()
		return nil
	}

	m.println()
	m.printf("📊 Expense Summary by Category (%s):\n", period)
	m.println()
	for _, ct := range summary {
		m.printf("%-15s: %s%s\n", ct.Category, m.opts.CurrencySymbol, ct.Total.Format())
	}
	m.printf("%-15s: %s%s\n", "Total", m.opts.CurrencySymbol, summary.Total().Format())
	m.println()
	return nil
}

func (m *Menu) deleteExpense(ctx context.Context) error {
	if err := m.viewExpenses(ctx); err != nil {
		return err
	}
	ref, err := m.prompt("Enter the ID of the expense to delete: ")
	if err != nil {
		return err
	}

	id, n, err := m.svc.DeleteExpenseByRef(ctx, ref)
	if err != nil {
		return err
	}
	if n == 0 {
		m.printf("No expense with ID %d; nothing deleted.\n\n", id)
		return nil
	}
	m.println("🗑️ Expense deleted.")
	m.println()
	return nil
}

func (m *Menu) exportCSV(ctx context.Context) error {
	expenses, err := m.svc.ExportExpenses(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteCSVFile(m.opts.ExportCSVPath, expenses); err != nil {
		m.logger.ErrorContext(ctx, "CSV export failed",
			applog.NewFields().WithOperation(applog.OpExport).WithErrorType(applog.ErrorTypeIO).WithError(err).ToSlice()...)
		return err
	}
	m.logger.InfoContext(ctx, "CSV exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldPath, m.opts.ExportCSVPath,
		applog.FieldCount, len(expenses))
	m.printf("📁 Data exported to '%s'.\n\n", m.opts.ExportCSVPath)
	return nil
}

func (m *Menu) showChart(ctx context.Context) error {
	summary, err := m.svc.Summarize(ctx, core.PeriodAll)
	if err != nil {
		return err
	}

	wedges := export.PieSlices(summary)
	if len(wedges) == 0 {
		m.println("No data available for chart.")
		m.println()
		return nil
	}

	m.println()
	m.println("💸 Expense Distribution by Category")
	m.println()
	for _, w := range wedges {
		bar := strings.Repeat("█", int(w.Percent/2+0.5))
		m.printf("%-15s %5.1f%% %s\n", w.Category, w.Percent, bar)
	}

	if err := export.RenderPieChartFile(m.opts.ChartPath, summary); err != nil {
		m.logger.ErrorContext(ctx, "Chart render failed",
			applog.NewFields().WithOperation(applog.OpChart).WithErrorType(applog.ErrorTypeIO).WithError(err).ToSlice()...)
		return err
	}
	m.printf("\n📈 Chart saved to '%s'.\n\n", m.opts.ChartPath)
	return nil
}

func (m *Menu) reportError(err error) {
	var (
		verr *core.ValidationError
		serr *core.StorageError
	)
	switch {
	case errors.As(err, &verr):
		m.printf("❌ Invalid %s: %v.\n\n", verr.Field, verr.Err)
	case errors.As(err, &serr):
		m.printf("❌ Storage error, nothing was changed: %v\n\n", serr.Err)
	default:
		m.printf("❌ %v\n\n", err)
	}
}

// prompt prints label and reads one trimmed line. It returns io.EOF when
// input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) println(a ...any) {
	fmt.Fprintln(m.out, a...)
}

func (m *Menu) printf(format string, a ...any) {
	fmt.Fprintf(m.out, format, a...)
}
