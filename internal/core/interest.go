package core

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// InterestCalculation is a saved calculator run. Interest and total are derived from
// the inputs on every call and never stored.
type InterestCalculation struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Principal Money                 `json:"principal"`
	Rate      decimal.Decimal       `json:"rate"`       // annual, percent
	Years     decimal.Decimal       `json:"time_years"` // may be fractional
	Type      InterestType          `json:"interest_type"`
	Frequency *CompoundingFrequency `json:"compounding_frequency,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

func (c InterestCalculation) Validate() error {
	if err := validateTitle(c.Name); err != nil {
		return err
	}
	if err := c.Principal.Validate(); err != nil {
		return err
	}
	if c.Rate.IsNegative() {
		return ErrInvalidRate
	}
	if !c.Years.IsPositive() {
		return ErrInvalidTime
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	if c.Type == CompoundInterest && (c.Frequency == nil || !c.Frequency.Valid()) {
		return ErrMissingCompounding
	}
	if _, _, err := c.Compute(); err != nil {
		return err
	}
	return nil
}

// Compute returns the interest and the total, both rounded to cents. Results too
// large for Money are reported as ErrInterestOutOfRange.
//
// Interest is principal*rate*years for simple interest and
// principal*(1+rate/n)^(n*years) - principal for compound interest.
func (c InterestCalculation) Compute() (interest, total Money, err error) {
	principal := c.Principal.Decimal()
	rate := c.Rate.Div(hundred)

	var raw decimal.Decimal
	if c.Type != CompoundInterest {
		raw = principal.Mul(rate).Mul(c.Years)
	} else {
		n := 1
		if c.Frequency != nil && c.Frequency.Valid() {
			n = c.Frequency.PeriodsPerYear()
		}
		periodic := rate.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
		exponent := float64(n) * c.Years.InexactFloat64()
		growth := math.Pow(1+periodic, exponent)
		if math.IsInf(growth, 0) || math.IsNaN(growth) {
			return Zero, Zero, ErrInterestOutOfRange
		}
		raw = principal.Mul(decimal.NewFromFloat(growth)).Sub(principal)
	}

	interest, err = MoneyFromDecimal(raw)
	if err != nil || interest.Cents > math.MaxInt64-c.Principal.Cents {
		return Zero, Zero, ErrInterestOutOfRange
	}
	return interest, c.Principal.Add(interest), nil
}

// InterestAmount is the interest part of Compute, or zero when it is out of range.
func (c InterestCalculation) InterestAmount() Money {
	interest, _, _ := c.Compute()
	return interest
}

// TotalAmount is principal plus interest, or zero when the interest is out of range.
func (c InterestCalculation) TotalAmount() Money {
	_, total, _ := c.Compute()
	return total
}
