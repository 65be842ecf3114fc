package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/ports"
)

// ExpenseService validates user input and runs it against the expense store.
// Store failures come back as *core.StorageError and bad input as
// *core.ValidationError; in both cases nothing has been written.
type ExpenseService struct {
	store  ports.Store
	clock  core.Clock
	logger *applog.Logger
}

// Option configures an ExpenseService.
type Option func(*ExpenseService)

// WithClock sets the clock used to default the expense date.
func WithClock(c core.Clock) Option {
	return func(s *ExpenseService) { s.clock = c }
}

// WithLogger sets the service logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *ExpenseService) { s.logger = l }
}

func NewExpenseService(store ports.Store, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		store:  store,
		clock:  core.SystemClock{},
		logger: applog.New(applog.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentExpense)
	return s
}

// CreateExpense parses the input and stores a new expense, returning its id.
func (s *ExpenseService) CreateExpense(ctx context.Context, in core.ExpenseInput) (int64, error) {
	e, err := in.Build(s.clock)
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected expense input",
			applog.NewFields().WithOperation(applog.OpCreate).WithError(err).ToSlice()...)
		return 0, err
	}

	id, err := s.store.Add(ctx, e)
	if err != nil {
		return 0, s.storageError(ctx, applog.OpCreate, err)
	}

	s.logger.InfoContext(ctx, "Expense added",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithExpense(id, e.Date.String(), e.Category, e.Amount.String()).
			ToSlice()...)
	return id, nil
}

// ListExpenses returns every expense, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, s.storageError(ctx, applog.OpList, err)
	}
	s.logger.DebugContext(ctx, "Expenses listed", applog.FieldOperation, applog.OpList, applog.FieldCount, len(list))
	return list, nil
}

// Summarize totals expenses by category over the given period.
func (s *ExpenseService) Summarize(ctx context.Context, period core.Period) (core.Summary, error) {
	var (
		summary core.Summary
		err     error
	)
	if since, ok := period.Since(s.clock.Now()); ok {
		summary, err = s.store.SummarizeByCategorySince(ctx, since)
	} else {
		summary, err = s.store.SummarizeByCategory(ctx)
	}
	if err != nil {
		return nil, s.storageError(ctx, applog.OpSummarize, err)
	}
	s.logger.DebugContext(ctx, "Expenses summarized",
		applog.FieldOperation, applog.OpSummarize,
		applog.FieldPeriod, string(period),
		applog.FieldCount, len(summary))
	return summary, nil
}

// DeleteExpense removes the expense with the given id. Deleting an id that
// does not exist succeeds and reports zero deleted rows.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, s.storageError(ctx, applog.OpDelete, err)
	}
	s.logger.InfoContext(ctx, "Expense delete executed",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id,
		applog.FieldCount, n)
	return n, nil
}

// DeleteExpenseByRef parses a user-typed id and deletes it. It returns the
// parsed id along with the number of deleted rows.
func (s *ExpenseService) DeleteExpenseByRef(ctx context.Context, ref string) (id, deleted int64, err error) {
	if id, err = ParseExpenseID(ref); err != nil {
		return 0, 0, err
	}
	deleted, err = s.DeleteExpense(ctx, id)
	return id, deleted, err
}

// ExportExpenses returns every expense in storage order.
func (s *ExpenseService) ExportExpenses(ctx context.Context) ([]core.Expense, error) {
	list, err := s.store.ExportAll(ctx)
	if err != nil {
		return nil, s.storageError(ctx, applog.OpExport, err)
	}
	return list, nil
}

// Close releases the underlying store.
func (s *ExpenseService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close expense store: %w", err)
	}
	return nil
}

// ParseExpenseID converts user input to an expense id.
func ParseExpenseID(ref string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64)
	if err != nil {
		return 0, &core.ValidationError{Field: "id", Err: core.ErrInvalidID}
	}
	return id, nil
}

func (s *ExpenseService) storageError(ctx context.Context, op string, err error) error {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	s.logger.ErrorContext(ctx, "Expense store failed",
		applog.NewFields().WithOperation(op).WithErrorType(applog.ErrorTypeDatabase).WithError(err).ToSlice()...)
	return &core.StorageError{Op: op, Err: err}
}
