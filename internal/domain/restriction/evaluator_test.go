//go:build unit

package restriction_test

import (
	"testing"
	"time"

	"staybook/internal/domain/restriction"
	"staybook/internal/domain/shared/daterange"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) daterange.DateRange {
	t.Helper()
	stay, err := daterange.New(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func activeMeta() restriction.RuleMeta {
	return restriction.RuleMeta{ID: uuid.New(), Active: true}
}

func kinds(violations []restriction.Violation) []restriction.Kind {
	out := make([]restriction.Kind, len(violations))
	for i, v := range violations {
		out[i] = v.Kind
	}
	return out
}

func TestEvaluate(t *testing.T) {
	today := date(2026, 6, 1)

	t.Run("empty rule set passes", func(t *testing.T) {
		stay := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))
		assert.Empty(t, restriction.Evaluate(restriction.Set{}, stay, 2, today))
	})

	t.Run("min stay", func(t *testing.T) {
		rules := restriction.Set{
			MinStay: []restriction.MinStayRule{{RuleMeta: activeMeta(), Nights: 3}},
		}

		short := mustStay(t, date(2026, 6, 10), date(2026, 6, 12))
		violations := restriction.Evaluate(rules, short, 2, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindMinStay, violations[0].Kind)

		exact := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))
		assert.Empty(t, restriction.Evaluate(rules, exact, 2, today))
	})

	t.Run("max stay", func(t *testing.T) {
		rules := restriction.Set{
			MaxStay: []restriction.MaxStayRule{{RuleMeta: activeMeta(), Nights: 5}},
		}

		long := mustStay(t, date(2026, 6, 10), date(2026, 6, 16))
		violations := restriction.Evaluate(rules, long, 2, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindMaxStay, violations[0].Kind)

		exact := mustStay(t, date(2026, 6, 10), date(2026, 6, 15))
		assert.Empty(t, restriction.Evaluate(rules, exact, 2, today))
	})

	t.Run("blackout applies only inside its window", func(t *testing.T) {
		start := date(2026, 7, 1)
		end := date(2026, 7, 31)
		rules := restriction.Set{
			Blackout: []restriction.BlackoutRule{{
				RuleMeta: restriction.RuleMeta{
					ID:     uuid.New(),
					Active: true,
					Window: daterange.Window{Start: &start, End: &end},
				},
				Reason: "annual maintenance",
			}},
		}

		inside := mustStay(t, date(2026, 7, 10), date(2026, 7, 13))
		violations := restriction.Evaluate(rules, inside, 2, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindBlackout, violations[0].Kind)
		assert.Contains(t, violations[0].Message, "annual maintenance")

		outside := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))
		assert.Empty(t, restriction.Evaluate(rules, outside, 2, today))
	})

	t.Run("max guests", func(t *testing.T) {
		rules := restriction.Set{
			MaxGuests: []restriction.MaxGuestsRule{{RuleMeta: activeMeta(), Limit: 4}},
		}
		stay := mustStay(t, date(2026, 6, 10), date(2026, 6, 13))

		violations := restriction.Evaluate(rules, stay, 5, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindMaxGuests, violations[0].Kind)

		assert.Empty(t, restriction.Evaluate(rules, stay, 4, today))
	})

	t.Run("advance booking limit", func(t *testing.T) {
		rules := restriction.Set{
			AdvanceBooking: []restriction.AdvanceBookingRule{{RuleMeta: activeMeta(), MaxDays: 30}},
		}

		tooFar := mustStay(t, date(2026, 7, 15), date(2026, 7, 18))
		violations := restriction.Evaluate(rules, tooFar, 2, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindAdvanceBooking, violations[0].Kind)

		// Exactly 30 days ahead is allowed
		boundary := mustStay(t, date(2026, 7, 1), date(2026, 7, 4))
		assert.Empty(t, restriction.Evaluate(rules, boundary, 2, today))
	})

	t.Run("check-in day of week", func(t *testing.T) {
		rules := restriction.Set{
			CheckInDays: []restriction.CheckInDaysRule{{
				RuleMeta: activeMeta(),
				Allowed:  restriction.NewWeekdaySet(time.Friday, time.Saturday),
			}},
		}

		// 2026-06-01 is a Monday
		monday := mustStay(t, date(2026, 6, 1), date(2026, 6, 4))
		violations := restriction.Evaluate(rules, monday, 2, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindCheckInDays, violations[0].Kind)
		assert.Contains(t, violations[0].Message, "Monday")

		friday := mustStay(t, date(2026, 6, 5), date(2026, 6, 8))
		assert.Empty(t, restriction.Evaluate(rules, friday, 2, today))
	})

	t.Run("check-out day of week", func(t *testing.T) {
		rules := restriction.Set{
			CheckOutDays: []restriction.CheckOutDaysRule{{
				RuleMeta: activeMeta(),
				Allowed:  restriction.NewWeekdaySet(time.Sunday),
			}},
		}

		// Check-out Thursday 2026-06-04
		midweek := mustStay(t, date(2026, 6, 1), date(2026, 6, 4))
		violations := restriction.Evaluate(rules, midweek, 2, today)
		require.Len(t, violations, 1)
		assert.Equal(t, restriction.KindCheckOutDays, violations[0].Kind)

		sunday := mustStay(t, date(2026, 6, 4), date(2026, 6, 7))
		assert.Empty(t, restriction.Evaluate(rules, sunday, 2, today))
	})

	t.Run("empty weekday set gates nothing", func(t *testing.T) {
		rules := restriction.Set{
			CheckInDays: []restriction.CheckInDaysRule{{RuleMeta: activeMeta()}},
		}
		stay := mustStay(t, date(2026, 6, 1), date(2026, 6, 4))
		assert.Empty(t, restriction.Evaluate(rules, stay, 2, today))
	})

	t.Run("inactive rules are skipped", func(t *testing.T) {
		meta := activeMeta()
		meta.Active = false
		rules := restriction.Set{
			MinStay: []restriction.MinStayRule{{RuleMeta: meta, Nights: 10}},
		}
		stay := mustStay(t, date(2026, 6, 10), date(2026, 6, 12))
		assert.Empty(t, restriction.Evaluate(rules, stay, 2, today))
	})

	t.Run("all violations are collected", func(t *testing.T) {
		rules := restriction.Set{
			MinStay:   []restriction.MinStayRule{{RuleMeta: activeMeta(), Nights: 5}},
			MaxGuests: []restriction.MaxGuestsRule{{RuleMeta: activeMeta(), Limit: 2}},
			CheckInDays: []restriction.CheckInDaysRule{{
				RuleMeta: activeMeta(),
				Allowed:  restriction.NewWeekdaySet(time.Friday),
			}},
		}

		// Monday check-in, 2 nights, 4 guests: every rule fails
		stay := mustStay(t, date(2026, 6, 1), date(2026, 6, 3))
		violations := restriction.Evaluate(rules, stay, 4, today)

		require.Len(t, violations, 3)
		assert.ElementsMatch(t,
			[]restriction.Kind{restriction.KindMinStay, restriction.KindMaxGuests, restriction.KindCheckInDays},
			kinds(violations))
	})
}

func TestCapacityViolation(t *testing.T) {
	v := restriction.CapacityViolation(4, 6)
	assert.Equal(t, restriction.KindMaxGuests, v.Kind)
	assert.Equal(t, uuid.Nil, v.RuleID)
	assert.Contains(t, v.Message, "4")
	assert.Contains(t, v.Message, "6")
}

func TestWeekdaySet(t *testing.T) {
	s := restriction.NewWeekdaySet(time.Sunday, time.Friday)

	assert.True(t, s.Has(time.Sunday))
	assert.True(t, s.Has(time.Friday))
	assert.False(t, s.Has(time.Monday))
	assert.False(t, s.IsEmpty())
	assert.Equal(t, []time.Weekday{time.Sunday, time.Friday}, s.Weekdays())

	assert.True(t, restriction.NewWeekdaySet().IsEmpty())
}
