// Package pricing computes the itemized nightly price for a stay from
// the property's active rate rules.
package pricing

import (
	"bytes"

	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"

	"github.com/google/uuid"
)

type AdjustmentMode string

const (
	AdjustFixed      AdjustmentMode = "fixed"
	AdjustPercentage AdjustmentMode = "percentage"
	AdjustMultiplier AdjustmentMode = "multiplier"
)

// Adjustment is the single interpreter shared by every rule category.
// fixed yields Value currency units, percentage yields amount*Value/100,
// multiplier yields amount*(Value-1). Unknown modes contribute nothing.
type Adjustment struct {
	Mode  AdjustmentMode
	Value float64
}

func (a Adjustment) ApplyTo(amount money.Money) money.Money {
	switch a.Mode {
	case AdjustFixed:
		return money.FromUnits(a.Value)
	case AdjustPercentage:
		return money.New(money.RoundHalfUp(float64(amount.Cents()) * a.Value / 100))
	case AdjustMultiplier:
		return money.New(money.RoundHalfUp(float64(amount.Cents()) * (a.Value - 1)))
	default:
		return money.New(0)
	}
}

// RuleMeta carries the fields common to every rule category. PropertyID
// nil means a platform-wide default rule.
type RuleMeta struct {
	ID         uuid.UUID
	PropertyID *uuid.UUID
	Priority   int
	Window     daterange.Window
	Active     bool
}

// One struct per rule category keeps invalid field combinations
// unrepresentable; rows are decoded into the variant matching their
// type tag.
type BaseRule struct {
	RuleMeta
	NightlyRate money.Money
}

type WeekendRule struct {
	RuleMeta
	Adjustment Adjustment
}

type SeasonalRule struct {
	RuleMeta
	Adjustment Adjustment
}

type LengthOfStayRule struct {
	RuleMeta
	Adjustment    Adjustment
	MinStayNights int
}

// RuleSet is every active rule loaded for one property (property rows
// plus global defaults), grouped by category.
type RuleSet struct {
	Base         []BaseRule
	Weekend      []WeekendRule
	Seasonal     []SeasonalRule
	LengthOfStay []LengthOfStayRule
}

// beats orders candidate rules: higher priority wins, ties break on the
// lowest rule ID so identical rule sets always price identically.
func beats(a, b RuleMeta) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

func (rs RuleSet) bestBase(stay daterange.DateRange) *BaseRule {
	var best *BaseRule
	for i := range rs.Base {
		r := &rs.Base[i]
		if !r.Active || !r.Window.CoversRange(stay) {
			continue
		}
		if best == nil || beats(r.RuleMeta, best.RuleMeta) {
			best = r
		}
	}
	return best
}

func (rs RuleSet) bestWeekend(stay daterange.DateRange) *WeekendRule {
	var best *WeekendRule
	for i := range rs.Weekend {
		r := &rs.Weekend[i]
		if !r.Active || !r.Window.CoversRange(stay) {
			continue
		}
		if best == nil || beats(r.RuleMeta, best.RuleMeta) {
			best = r
		}
	}
	return best
}

// bestSeasonal matches on the check-in date, not the whole range: the
// season the stay begins in prices the stay.
func (rs RuleSet) bestSeasonal(stay daterange.DateRange) *SeasonalRule {
	var best *SeasonalRule
	for i := range rs.Seasonal {
		r := &rs.Seasonal[i]
		if !r.Active || !r.Window.CoversDate(stay.CheckIn()) {
			continue
		}
		if best == nil || beats(r.RuleMeta, best.RuleMeta) {
			best = r
		}
	}
	return best
}

// bestLengthOfStay picks the highest-priority applicable rule, breaking
// priority ties on the largest min-stay threshold that the stay clears.
func (rs RuleSet) bestLengthOfStay(stay daterange.DateRange) *LengthOfStayRule {
	nights := stay.Nights()
	var best *LengthOfStayRule
	for i := range rs.LengthOfStay {
		r := &rs.LengthOfStay[i]
		if !r.Active || r.MinStayNights > nights || !r.Window.CoversRange(stay) {
			continue
		}
		if best == nil {
			best = r
			continue
		}
		switch {
		case r.Priority != best.Priority:
			if r.Priority > best.Priority {
				best = r
			}
		case r.MinStayNights != best.MinStayNights:
			if r.MinStayNights > best.MinStayNights {
				best = r
			}
		case bytes.Compare(r.ID[:], best.ID[:]) < 0:
			best = r
		}
	}
	return best
}
