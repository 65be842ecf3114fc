package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func sampleExpenses() []core.Expense {
	return []core.Expense{
		{ID: 1, Date: core.NewDate(2024, 1, 5), Category: "Food", Description: "lunch, with tea", Amount: core.NewAmount(12.5)},
		{ID: 2, Date: core.NewDate(2024, 1, 5), Category: "Rent", Amount: core.NewAmount(500)},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleExpenses()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Date", "Category", "Description", "Amount"}, records[0])
	assert.Equal(t, []string{"1", "2024-01-05", "Food", "lunch, with tea", "12.5"}, records[1])
	assert.Equal(t, []string{"2", "2024-01-05", "Rent", "", "500"}, records[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "ID,Date,Category,Description,Amount\n", buf.String())
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses_export.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteCSVFile(path, sampleExpenses()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "ID,Date,Category,Description,Amount\n"))
	assert.NotContains(t, string(raw), "stale")
}

func TestPieSlices(t *testing.T) {
	summary := core.Summary{
		{Category: "Food", Total: core.NewAmount(25)},
		{Category: "Rent", Total: core.NewAmount(75)},
		{Category: "Refund", Total: core.NewAmount(-10)},
	}
	got := PieSlices(summary)
	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Category)
	assert.InDelta(t, 25.0, got[0].Percent, 1e-9)
	assert.InDelta(t, 75.0, got[1].Percent, 1e-9)

	assert.Empty(t, PieSlices(core.Summary{}))
	assert.Empty(t, PieSlices(core.Summary{{Category: "Zero", Total: core.NewAmount(0)}}))
}

func TestRenderPieChart(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPieChart(&buf, core.Summary{
		{Category: "Food", Total: core.NewAmount(12.5)},
		{Category: "Rent", Total: core.NewAmount(500)},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "expected PNG output")
}

func TestRenderPieChartFileNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	err := RenderPieChartFile(path, core.Summary{})
	assert.ErrorIs(t, err, ErrNoChartData)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
