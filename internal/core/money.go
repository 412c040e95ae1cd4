// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and currency unit representations.
package core

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is a non-negative currency amount stored in cents.
type Money struct {
	Cents int64
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney builds a Money from whole units and cents, e.g. NewMoney(12, 34) is 12.34.
func NewMoney(units, cents int64) Money {
	return Money{Cents: units*100 + cents}
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// MoneyFromDecimal rounds d half-up to cents. Amounts that do not fit in int64
// cents are rejected with ErrInvalidAmount.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return Zero, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive cents.
// Returns an error for invalid formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	return parseCents(s, false)
}

// ParseMoney parses a non-negative amount. Unlike ParseDecimalToCents it accepts zero,
// which is a valid starting balance.
func ParseMoney(s string) (Money, error) {
	cents, err := parseCents(s, true)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: cents}, nil
}

func parseCents(s string, allowZero bool) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents < 0 || (cents == 0 && !allowZero) {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Validate reports ErrInvalidAmount unless the amount is strictly positive.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }
func (m Money) IsZero() bool      { return m.Cents == 0 }

// Floor returns m, or zero when m is negative.
func (m Money) Floor() Money {
	if m.Cents < 0 {
		return Zero
	}
	return m
}

// Ratio returns m/o as a float, or 0 when o is zero.
func (m Money) Ratio(o Money) float64 {
	if o.Cents == 0 {
		return 0
	}
	return float64(m.Cents) / float64(o.Cents)
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Units returns the amount in currency units as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with two decimals, e.g. "12.34".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Sum adds up a list of amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON encodes the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts either a decimal string ("12.34") or a JSON number (12.34).
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Zero
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parse money %q: %w", s, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("parse money %q: %w", s, ErrInvalidAmount)
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return fmt.Errorf("parse money %q: %w", s, err)
	}
	*m = parsed
	return nil
}
