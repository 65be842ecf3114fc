package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "expenses.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func mustAdd(t *testing.T, repo *SQLiteRepository, date core.Date, category, description string, amount float64) int64 {
	t.Helper()
	id, err := repo.Add(context.Background(), core.Expense{
		Date:        date,
		Category:    category,
		Description: description,
		Amount:      core.NewAmount(amount),
	})
	require.NoError(t, err)
	return id
}

func TestSQLiteRepository_EmptyStore(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	summary, err := repo.SummarizeByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, summary)

	exported, err := repo.ExportAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, exported)
}

func TestSQLiteRepository_AddAndList(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	food := mustAdd(t, repo, core.NewDate(2024, 1, 5), "Food", "lunch", 12.50)
	rent := mustAdd(t, repo, core.NewDate(2024, 1, 5), "Rent", "", 500.0)
	older := mustAdd(t, repo, core.NewDate(2023, 12, 31), "Travel", "train", 40)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Date descending, ties by id descending.
	assert.Equal(t, []int64{rent, food, older}, []int64{list[0].ID, list[1].ID, list[2].ID})

	got := list[1]
	assert.Equal(t, "2024-01-05", got.Date.String())
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, "lunch", got.Description)
	assert.Equal(t, "12.50", got.Amount.Format())
	assert.Equal(t, "", list[0].Description)

	again, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, again)
}

func TestSQLiteRepository_ExportInStorageOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	first := mustAdd(t, repo, core.NewDate(2023, 1, 1), "A", "", 1)
	second := mustAdd(t, repo, core.NewDate(2025, 1, 1), "B", "", 2)

	exported, err := repo.ExportAll(context.Background())
	require.NoError(t, err)
	require.Len(t, exported, 2)
	assert.Equal(t, first, exported[0].ID)
	assert.Equal(t, second, exported[1].ID)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id := mustAdd(t, repo, core.NewDate(2024, 1, 5), "Food", "", 1)
	keep := mustAdd(t, repo, core.NewDate(2024, 1, 6), "Food", "", 2)

	n, err := repo.Delete(ctx, 12345)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)

	// AUTOINCREMENT never hands out a deleted id again.
	next := mustAdd(t, repo, core.NewDate(2024, 1, 7), "Food", "", 3)
	assert.Greater(t, next, keep)
}

func TestSQLiteRepository_Summaries(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	mustAdd(t, repo, core.NewDate(2024, 1, 5), "Food", "lunch", 12.50)
	mustAdd(t, repo, core.NewDate(2024, 1, 5), "Rent", "", 500.0)
	mustAdd(t, repo, core.NewDate(2024, 2, 10), "Food", "dinner", 7.25)

	summary, err := repo.SummarizeByCategory(ctx)
	require.NoError(t, err)
	m := summary.AsMap()
	require.Len(t, m, 2)
	assert.Equal(t, "19.75", m["Food"].Format())
	assert.Equal(t, "500.00", m["Rent"].Format())
	assert.Equal(t, "519.75", summary.Total().Format())

	since, err := repo.SummarizeByCategorySince(ctx, core.NewDate(2024, 2, 1))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, "Food", since[0].Category)
	assert.Equal(t, "7.25", since[0].Total.Format())
}

func TestSQLiteRepository_Reopen(t *testing.T) {
	repo, path := newTestRepo(t)
	id := mustAdd(t, repo, core.NewDate(2024, 1, 5), "Food", "", 12.5)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestSQLiteRepository_NonFiniteAmountIsAnError(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	mustAdd(t, repo, core.NewDate(2024, 1, 5), "Food", "", 12.50)
	_, err := repo.db.Exec("INSERT INTO expenses (date, category, description, amount) VALUES ('2024-01-06', 'Food', NULL, 9e999)")
	require.NoError(t, err)

	_, err = repo.ListAll(ctx)
	require.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = repo.ExportAll(ctx)
	require.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = repo.SummarizeByCategory(ctx)
	require.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestSQLiteRepository_OverflowingTotalIsAnError(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	mustAdd(t, repo, core.NewDate(2024, 1, 5), "Food", "", 1e308)
	mustAdd(t, repo, core.NewDate(2024, 1, 6), "Food", "", 1e308)
	mustAdd(t, repo, core.NewDate(2024, 1, 6), "Rent", "", 500)

	_, err := repo.SummarizeByCategory(ctx)
	require.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Contains(t, err.Error(), `"Food"`)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
