// Package core provides money parsing and handling utilities.
//
// Amounts are signed decimals backed by shopspring/decimal so that parsing
// and display never go through binary floating point.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a signed currency magnitude. The currency is implicit.
type Amount struct {
	decimal.Decimal
}

// MaxAmount bounds the magnitude of a single amount. Sums of bounded amounts
// stay finite in a REAL column.
var MaxAmount = decimal.New(1, 15)

// NewAmount returns an Amount from a float. f must be finite.
func NewAmount(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// AmountFromFloat is NewAmount for values read back from storage, where a
// non-finite value is reported instead of panicking.
func AmountFromFloat(f float64) (Amount, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Amount{}, ErrInvalidAmount
	}
	return NewAmount(f), nil
}

// ParseAmount converts user input to an Amount.
//
// Any decimal up to MaxAmount in magnitude is accepted, including negative
// values and exponent form. A decimal comma is normalized to a dot.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("12,50") -> 12.5, nil
//	ParseAmount("-3")    -> -3, nil
//	ParseAmount("abc")   -> ErrInvalidAmount
//	ParseAmount("1e400") -> ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{Decimal: d}, nil
}

// Float returns the amount as stored in the REAL column.
func (a Amount) Float() float64 {
	return a.InexactFloat64()
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// Format renders the amount with two decimal places.
func (a Amount) Format() string {
	return a.StringFixed(2)
}
