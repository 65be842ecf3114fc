// Package export writes expenses to files: a CSV dump and a pie chart of the
// category summary.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"expenses/internal/core"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"ID", "Date", "Category", "Description", "Amount"}

// WriteCSV writes the header and one row per expense, in the given order.
func WriteCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Category,
			e.Description,
			e.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile replaces path with a CSV export of expenses.
func WriteCSVFile(path string, expenses []core.Expense) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()
	return WriteCSV(f, expenses)
}
