package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for storage and display.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Expense is a single recorded expense. ID is assigned by the store.
	Expense struct {
		ID          int64
		Date        Date
		Category    string
		Description string
		Amount      Amount
	}

	// ExpenseInput carries the raw, unparsed fields typed by the user.
	ExpenseInput struct {
		Date        string
		Category    string
		Description string
		Amount      string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidID     = errors.New("invalid expense id")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return &ValidationError{Field: "date", Err: err}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	return nil
}

// Build parses the raw input into an Expense. A blank date defaults to the
// clock's current calendar date. The returned expense has no ID.
func (in ExpenseInput) Build(clock Clock) (Expense, error) {
	var date Date
	if strings.TrimSpace(in.Date) == "" {
		date = Today(clock)
	} else {
		d, err := ParseDate(in.Date)
		if err != nil {
			return Expense{}, &ValidationError{Field: "date", Err: err}
		}
		date = d
	}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Expense{}, &ValidationError{Field: "amount", Err: err}
	}

	e := Expense{
		Date:        date,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}
