package memory

import (
	"context"
	"sort"
	"sync"

	"expenses/internal/core"
)

// Store keeps expenses in process memory. Ids are assigned from a counter
// and are never reused after a delete.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

func New() *Store {
	return &Store{nextID: 1}
}

// Add stores the expense and returns its id.
func (s *Store) Add(_ context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID, nil
}

func (s *Store) ListAll(_ context.Context) ([]core.Expense, error) {
	out := s.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) ExportAll(_ context.Context) ([]core.Expense, error) {
	return s.snapshot(), nil
}

func (s *Store) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Store) SummarizeByCategory(_ context.Context) (core.Summary, error) {
	return s.summarize(func(core.Expense) bool { return true }), nil
}

func (s *Store) SummarizeByCategorySince(_ context.Context, since core.Date) (core.Summary, error) {
	return s.summarize(func(e core.Expense) bool { return !e.Date.Before(since.Time) }), nil
}

func (s *Store) Close() error { return nil }

func (s *Store) summarize(keep func(core.Expense) bool) core.Summary {
	totals := map[string]core.Amount{}
	for _, e := range s.snapshot() {
		if keep(e) {
			totals[e.Category] = totals[e.Category].Add(e.Amount)
		}
	}

	summary := make(core.Summary, 0, len(totals))
	for category, total := range totals {
		summary = append(summary, core.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Category < summary[j].Category })
	return summary
}

func (s *Store) snapshot() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense{}, s.items...)
}
