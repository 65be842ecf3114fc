package memory

import (
	"context"
	"testing"

	"expenses/internal/core"
)

// seededStore returns a store holding seed, with ids assigned in order.
func seededStore(t *testing.T, seed ...core.Expense) *Store {
	t.Helper()
	s := New()
	for _, e := range seed {
		if _, err := s.Add(context.Background(), e); err != nil {
			t.Fatalf("seed %+v: %v", e, err)
		}
	}
	return s
}

func TestMemoryStoreAddListDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	id1, err := s.Add(ctx, core.Expense{Date: core.NewDate(2024, 1, 5), Category: "Food", Amount: core.NewAmount(12.5)})
	if err != nil || id1 != 1 {
		t.Fatalf("unexpected add: id=%d err=%v", id1, err)
	}
	id2, _ := s.Add(ctx, core.Expense{Date: core.NewDate(2024, 1, 6), Category: "Rent", Amount: core.NewAmount(500)})
	id3, _ := s.Add(ctx, core.Expense{Date: core.NewDate(2024, 1, 5), Category: "Food", Amount: core.NewAmount(3)})

	list, _ := s.ListAll(ctx)
	if len(list) != 3 || list[0].ID != id2 || list[1].ID != id3 || list[2].ID != id1 {
		t.Fatalf("unexpected order: %+v", list)
	}

	if n, err := s.Delete(ctx, id3); err != nil || n != 1 {
		t.Fatalf("unexpected delete: n=%d err=%v", n, err)
	}
	if n, err := s.Delete(ctx, 99); err != nil || n != 0 {
		t.Fatalf("missing id delete should be a no-op: n=%d err=%v", n, err)
	}

	id4, _ := s.Add(ctx, core.Expense{Date: core.NewDate(2024, 1, 7), Category: "Food", Amount: core.NewAmount(1)})
	if id4 != 4 {
		t.Fatalf("ids must not be reused, got %d", id4)
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	s := New()
	if _, err := s.Add(context.Background(), core.Expense{Date: core.NewDate(2024, 1, 5)}); err == nil {
		t.Fatalf("expected error for empty category")
	}
	if got, _ := s.ExportAll(context.Background()); len(got) != 0 {
		t.Fatalf("invalid add must not write, got %v", got)
	}
}

func TestMemoryStoreSummaries(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t,
		core.Expense{Date: core.NewDate(2024, 1, 5), Category: "Food", Amount: core.NewAmount(12.5)},
		core.Expense{Date: core.NewDate(2024, 2, 1), Category: "Food", Amount: core.NewAmount(2.5)},
		core.Expense{Date: core.NewDate(2024, 1, 5), Category: "Rent", Amount: core.NewAmount(500)},
	)

	all, _ := s.SummarizeByCategory(ctx)
	m := all.AsMap()
	if len(m) != 2 || m["Food"].Format() != "15.00" || m["Rent"].Format() != "500.00" {
		t.Fatalf("unexpected summary: %v", all)
	}

	feb, _ := s.SummarizeByCategorySince(ctx, core.NewDate(2024, 2, 1))
	if len(feb) != 1 || feb[0].Category != "Food" || feb[0].Total.Format() != "2.50" {
		t.Fatalf("unexpected filtered summary: %v", feb)
	}
}
