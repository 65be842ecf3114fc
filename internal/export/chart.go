package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"expenses/internal/core"
)

// ErrNoChartData is returned when no category has a positive total.
var ErrNoChartData = errors.New("no data available for chart")

const chartTitle = "Expense Distribution by Category"

// Slice is one wedge of the pie chart.
type Slice struct {
	Category string
	Total    core.Amount
	Percent  float64
}

// PieSlices returns the categories with a positive total and their share of
// the sum of those totals. Categories that net to zero or below cannot be
// drawn and are left out.
func PieSlices(summary core.Summary) []Slice {
	sum := decimal.Zero
	for _, ct := range summary {
		if ct.Total.IsPositive() {
			sum = sum.Add(ct.Total.Decimal)
		}
	}
	if !sum.IsPositive() {
		return nil
	}

	wedges := make([]Slice, 0, len(summary))
	for _, ct := range summary {
		if !ct.Total.IsPositive() {
			continue
		}
		pct := ct.Total.Decimal.Div(sum).Mul(decimal.NewFromInt(100)).InexactFloat64()
		wedges = append(wedges, Slice{Category: ct.Category, Total: ct.Total, Percent: pct})
	}
	return wedges
}

// RenderPieChart draws the summary as a PNG pie chart labelled by category.
func RenderPieChart(w io.Writer, summary core.Summary) error {
	wedges := PieSlices(summary)
	if len(wedges) == 0 {
		return ErrNoChartData
	}

	values := make([]chart.Value, len(wedges))
	for i, s := range wedges {
		values[i] = chart.Value{
			Value: s.Total.Float(),
			Label: fmt.Sprintf("%s %.1f%%", s.Category, s.Percent),
		}
	}

	pie := chart.PieChart{
		Title:  chartTitle,
		Width:  800,
		Height: 600,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// RenderPieChartFile writes the pie chart to path. The file is not created
// when there is nothing to draw.
func RenderPieChartFile(path string, summary core.Summary) (err error) {
	if len(PieSlices(summary)) == 0 {
		return ErrNoChartData
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close chart file: %w", cerr)
		}
	}()
	return RenderPieChart(f, summary)
}
