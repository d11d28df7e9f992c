package pricing

import (
	"errors"
	"fmt"

	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

var ErrNoBaseRate = errors.New("no active base rate for property")

type LineKind string

const (
	LineBasePrice          LineKind = "base_price"
	LineWeekendSurcharge   LineKind = "weekend_surcharge"
	LineSeasonalAdjustment LineKind = "seasonal_adjustment"
	LineLengthDiscount     LineKind = "length_discount"
)

// Line is one itemized contribution to the total. Immutable once
// attached to a booking; the amounts of a quote's lines sum to its
// total exactly.
type Line struct {
	Kind        LineKind
	Description string
	Quantity    int
	UnitPrice   money.Money
	Amount      money.Money
}

type Quote struct {
	// Base is the resolved nightly base rate, not the base subtotal.
	Base     money.Money
	Total    money.Money
	Currency string
	Lines    []Line
}

// LinesTotal re-sums the breakdown, for invariant checks.
func (q Quote) LinesTotal() money.Money {
	sum := money.New(0)
	for _, l := range q.Lines {
		sum = sum.Add(l.Amount)
	}
	return sum
}

type Calculator struct {
	currency string
}

func NewCalculator(currency string) *Calculator {
	return &Calculator{currency: currency}
}

// Calculate prices a stay against the property's rule set: the base rate
// times nights, then the weekend surcharge on the weekend-night subtotal,
// then the length-of-stay discount and seasonal adjustment, each applied
// to the running total. Every adjustment goes through the shared
// Adjustment interpreter and lands as one breakdown line.
func (c *Calculator) Calculate(rules RuleSet, stay daterange.DateRange) (Quote, error) {
	base := rules.bestBase(stay)
	if base == nil {
		return Quote{}, ErrNoBaseRate
	}

	nights := stay.Nights()
	weekendNights := stay.WeekendNights()
	nightly := base.NightlyRate

	lines := []Line{{
		Kind:        LineBasePrice,
		Description: fmt.Sprintf("Base rate, %d night(s)", nights),
		Quantity:    nights,
		UnitPrice:   nightly,
		Amount:      nightly.MulInt(nights),
	}}
	total := nightly.MulInt(nights)

	if weekendNights > 0 {
		if w := rules.bestWeekend(stay); w != nil {
			surcharge := w.Adjustment.ApplyTo(nightly.MulInt(weekendNights))
			if surcharge.IsPositive() {
				lines = append(lines, Line{
					Kind:        LineWeekendSurcharge,
					Description: fmt.Sprintf("Weekend surcharge, %d night(s)", weekendNights),
					Quantity:    weekendNights,
					UnitPrice:   nightly,
					Amount:      surcharge,
				})
				total = total.Add(surcharge)
			}
		}
	}

	if los := rules.bestLengthOfStay(stay); los != nil {
		discount := los.Adjustment.ApplyTo(total)
		if !discount.IsZero() {
			lines = append(lines, Line{
				Kind:        LineLengthDiscount,
				Description: fmt.Sprintf("Length-of-stay discount (%d+ nights)", los.MinStayNights),
				Quantity:    1,
				UnitPrice:   total,
				Amount:      discount.Neg(),
			})
			total = total.Sub(discount)
		}
	}

	if s := rules.bestSeasonal(stay); s != nil {
		adj := s.Adjustment.ApplyTo(total)
		if !adj.IsZero() {
			lines = append(lines, Line{
				Kind:        LineSeasonalAdjustment,
				Description: "Seasonal adjustment",
				Quantity:    1,
				UnitPrice:   total,
				Amount:      adj,
			})
			total = total.Add(adj)
		}
	}

	return Quote{
		Base:     nightly,
		Total:    total,
		Currency: c.currency,
		Lines:    lines,
	}, nil
}
