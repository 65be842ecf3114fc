package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Period restricts a summary to expenses dated in the current week, month or year.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod maps user input to a Period. Blank input means PeriodAll.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", &ValidationError{Field: "period", Err: fmt.Errorf("unknown period %q", s)}
	}
}

// Since returns the first date covered by the period relative to t.
// For PeriodAll it returns the zero Date and false.
func (p Period) Since(t time.Time) (Date, bool) {
	n := now.With(t)
	switch p {
	case PeriodWeek:
		return DateOf(n.BeginningOfWeek()), true
	case PeriodMonth:
		return DateOf(n.BeginningOfMonth()), true
	case PeriodYear:
		return DateOf(n.BeginningOfYear()), true
	default:
		return Date{}, false
	}
}
