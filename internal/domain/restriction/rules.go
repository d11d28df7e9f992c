// Package restriction evaluates property booking policies against a
// candidate stay.
package restriction

import (
	"time"

	"staybook/internal/domain/shared/daterange"

	"github.com/google/uuid"
)

type Kind string

const (
	KindMinStay        Kind = "min_stay"
	KindMaxStay        Kind = "max_stay"
	KindBlackout       Kind = "blackout"
	KindMaxGuests      Kind = "max_guests"
	KindAdvanceBooking Kind = "advance_booking"
	KindCheckInDays    Kind = "check_in_days"
	KindCheckOutDays   Kind = "check_out_days"
)

// RuleMeta carries the fields common to every restriction category.
// PropertyID nil means a platform-wide rule; both kinds apply together.
type RuleMeta struct {
	ID         uuid.UUID
	PropertyID *uuid.UUID
	Window     daterange.Window
	Active     bool
}

// Applies gates a rule on its active flag and applicability window. A
// window that does not cover the candidate range skips the rule
// entirely; nil bounds are unbounded.
func (m RuleMeta) Applies(stay daterange.DateRange) bool {
	return m.Active && m.Window.CoversRange(stay)
}

type MinStayRule struct {
	RuleMeta
	Nights int
}

type MaxStayRule struct {
	RuleMeta
	Nights int
}

type BlackoutRule struct {
	RuleMeta
	Reason string
}

type MaxGuestsRule struct {
	RuleMeta
	Limit int
}

// AdvanceBookingRule caps how far ahead of today a stay may begin.
type AdvanceBookingRule struct {
	RuleMeta
	MaxDays int
}

type CheckInDaysRule struct {
	RuleMeta
	Allowed WeekdaySet
}

type CheckOutDaysRule struct {
	RuleMeta
	Allowed WeekdaySet
}

// Set is every restriction loaded for one property (property rows plus
// global rules), grouped by category.
type Set struct {
	MinStay        []MinStayRule
	MaxStay        []MaxStayRule
	Blackout       []BlackoutRule
	MaxGuests      []MaxGuestsRule
	AdvanceBooking []AdvanceBookingRule
	CheckInDays    []CheckInDaysRule
	CheckOutDays   []CheckOutDaysRule
}

// WeekdaySet is a bitmask over time.Weekday (bit 0 = Sunday).
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

func (s WeekdaySet) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}
