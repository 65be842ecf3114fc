package ports

import (
	"context"

	"expenses/internal/core"
)

// Ports implemented by expense stores.
type (
	ExpenseWriter interface {
		// Add persists e and returns its newly assigned id. e.ID is ignored.
		Add(ctx context.Context, e core.Expense) (id int64, err error)
	}

	// ExpenseLister returns all expenses, newest date first.
	ExpenseLister interface {
		ListAll(ctx context.Context) ([]core.Expense, error)
	}

	// ExpenseDeleter removes an expense by id. A missing id is not an error;
	// the returned count is zero.
	ExpenseDeleter interface {
		Delete(ctx context.Context, id int64) (deleted int64, err error)
	}

	// CategorySummarizer totals amounts per category.
	CategorySummarizer interface {
		SummarizeByCategory(ctx context.Context) (core.Summary, error)
		// SummarizeByCategorySince only counts expenses dated on or after since.
		SummarizeByCategorySince(ctx context.Context, since core.Date) (core.Summary, error)
	}

	// ExpenseExporter returns all expenses in storage order.
	ExpenseExporter interface {
		ExportAll(ctx context.Context) ([]core.Expense, error)
	}

	Store interface {
		ExpenseWriter
		ExpenseLister
		ExpenseDeleter
		CategorySummarizer
		ExpenseExporter
		Close() error
	}
)
