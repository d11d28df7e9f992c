// Package money holds amounts in the currency's minor unit. Integer
// cents keep price breakdown lines summing to the total exactly.
package money

import (
	"errors"
	"math"
)

type Money struct {
	cents int64
}

func New(cents int64) Money {
	return Money{cents: cents}
}

func NewNonNegative(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

// FromUnits converts a decimal amount of major units to cents with
// half-up rounding.
func FromUnits(units float64) Money {
	return Money{cents: RoundHalfUp(units * 100)}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) Neg() Money {
	return Money{cents: -m.cents}
}

func (m Money) MulInt(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

// RoundHalfUp rounds to the nearest integer with ties going away from
// zero, matching half-up rounding of the currency's minor unit.
func RoundHalfUp(x float64) int64 {
	return int64(math.Round(x))
}
