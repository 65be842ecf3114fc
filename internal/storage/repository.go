package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"

	"expenses/internal/core"

	_ "modernc.org/sqlite"
)

const expensesTable = "expenses"

var expenseColumns = []string{"id", "date", "category", "description", "amount"}

// SQLiteRepository is the durable expense store. Every mutation is a single
// auto-committed statement, so no caller ever observes a partial record.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add implements ports.ExpenseWriter
func (r *SQLiteRepository) Add(ctx context.Context, e core.Expense) (int64, error) {
	var description any
	if e.Description != "" {
		description = e.Description
	}

	res, err := sq.Insert(expensesTable).
		Columns("date", "category", "description", "amount").
		Values(e.Date.String(), e.Category, description, e.Amount.Float()).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", e.Date.String(),
		"category", e.Category,
		"amount", e.Amount.String())

	return id, nil
}

// ListAll implements ports.ExpenseLister. Equal dates are ordered by id, newest first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Expense, error) {
	query := sq.Select(expenseColumns...).
		From(expensesTable).
		OrderBy("date DESC", "id DESC")

	expenses, err := r.queryExpenses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// ExportAll implements ports.ExpenseExporter
func (r *SQLiteRepository) ExportAll(ctx context.Context) ([]core.Expense, error) {
	query := sq.Select(expenseColumns...).
		From(expensesTable).
		OrderBy("id ASC")

	expenses, err := r.queryExpenses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}
	return expenses, nil
}

// Delete implements ports.ExpenseDeleter. No existence check is made; a
// missing id deletes zero rows.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := sq.Delete(expensesTable).
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expense %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read affected rows: %w", err)
	}

	slog.DebugContext(ctx, "Expense delete executed", "id", id, "rows", n)
	return n, nil
}

// SummarizeByCategory implements ports.CategorySummarizer
func (r *SQLiteRepository) SummarizeByCategory(ctx context.Context) (core.Summary, error) {
	return r.summarize(ctx, sq.Select("category", "SUM(amount)").From(expensesTable))
}

// SummarizeByCategorySince implements ports.CategorySummarizer
func (r *SQLiteRepository) SummarizeByCategorySince(ctx context.Context, since core.Date) (core.Summary, error) {
	return r.summarize(ctx, sq.Select("category", "SUM(amount)").
		From(expensesTable).
		Where(sq.GtOrEq{"date": since.String()}))
}

func (r *SQLiteRepository) summarize(ctx context.Context, query sq.SelectBuilder) (core.Summary, error) {
	rows, err := query.
		GroupBy("category").
		OrderBy("category").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	defer rows.Close()

	summary := core.Summary{}
	for rows.Next() {
		var (
			category string
			total    float64
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		amount, err := core.AmountFromFloat(total)
		if err != nil {
			return nil, fmt.Errorf("category %q total %v: %w", category, total, err)
		}
		summary = append(summary, core.CategoryTotal{
			Category: category,
			Total:    amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}

	return summary, nil
}

func (r *SQLiteRepository) queryExpenses(ctx context.Context, query sq.SelectBuilder) ([]core.Expense, error) {
	rows, err := query.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]core.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

func scanExpense(rows *sql.Rows) (core.Expense, error) {
	var (
		e           core.Expense
		date        string
		description sql.NullString
		amount      float64
	)
	if err := rows.Scan(&e.ID, &date, &e.Category, &description, &amount); err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %d has malformed date %q: %w", e.ID, date, err)
	}
	e.Date = d
	e.Description = description.String
	if e.Amount, err = core.AmountFromFloat(amount); err != nil {
		return core.Expense{}, fmt.Errorf("expense %d has non-finite amount %v: %w", e.ID, amount, err)
	}

	return e, nil
}
