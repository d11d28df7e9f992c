package restriction

import (
	"fmt"
	"strings"
	"time"

	"staybook/internal/domain/shared/daterange"

	"github.com/google/uuid"
)

// Violation is one failed policy check. Business-rule failures are data,
// not errors; only rule-store failures surface as Go errors upstream.
type Violation struct {
	Kind    Kind      `json:"kind"`
	RuleID  uuid.UUID `json:"rule_id"`
	Message string    `json:"message"`
}

// Evaluate runs every applicable restriction against the candidate stay
// and collects all violations rather than stopping at the first, so the
// caller can report the complete picture.
func Evaluate(rules Set, stay daterange.DateRange, guestCount int, today time.Time) []Violation {
	var violations []Violation
	nights := stay.Nights()
	today = daterange.Midnight(today)

	for _, r := range rules.MinStay {
		if !r.Applies(stay) {
			continue
		}
		if nights < r.Nights {
			violations = append(violations, Violation{
				Kind:    KindMinStay,
				RuleID:  r.ID,
				Message: fmt.Sprintf("minimum stay is %d night(s), requested %d", r.Nights, nights),
			})
		}
	}

	for _, r := range rules.MaxStay {
		if !r.Applies(stay) {
			continue
		}
		if nights > r.Nights {
			violations = append(violations, Violation{
				Kind:    KindMaxStay,
				RuleID:  r.ID,
				Message: fmt.Sprintf("maximum stay is %d night(s), requested %d", r.Nights, nights),
			})
		}
	}

	for _, r := range rules.Blackout {
		if !r.Applies(stay) {
			continue
		}
		msg := "the property is not bookable for the selected dates"
		if r.Reason != "" {
			msg = fmt.Sprintf("%s: %s", msg, r.Reason)
		}
		violations = append(violations, Violation{
			Kind:    KindBlackout,
			RuleID:  r.ID,
			Message: msg,
		})
	}

	for _, r := range rules.MaxGuests {
		if !r.Applies(stay) {
			continue
		}
		if guestCount > r.Limit {
			violations = append(violations, Violation{
				Kind:    KindMaxGuests,
				RuleID:  r.ID,
				Message: fmt.Sprintf("at most %d guest(s) allowed, requested %d", r.Limit, guestCount),
			})
		}
	}

	for _, r := range rules.AdvanceBooking {
		if !r.Applies(stay) {
			continue
		}
		daysAhead := int(stay.CheckIn().Sub(today) / (24 * time.Hour))
		if daysAhead > r.MaxDays {
			violations = append(violations, Violation{
				Kind:    KindAdvanceBooking,
				RuleID:  r.ID,
				Message: fmt.Sprintf("bookings can be made at most %d day(s) in advance, requested %d", r.MaxDays, daysAhead),
			})
		}
	}

	for _, r := range rules.CheckInDays {
		if !r.Applies(stay) || r.Allowed.IsEmpty() {
			continue
		}
		if day := stay.CheckIn().Weekday(); !r.Allowed.Has(day) {
			violations = append(violations, Violation{
				Kind:    KindCheckInDays,
				RuleID:  r.ID,
				Message: fmt.Sprintf("check-in on %s is not allowed (allowed: %s)", day, weekdayList(r.Allowed)),
			})
		}
	}

	for _, r := range rules.CheckOutDays {
		if !r.Applies(stay) || r.Allowed.IsEmpty() {
			continue
		}
		if day := stay.CheckOut().Weekday(); !r.Allowed.Has(day) {
			violations = append(violations, Violation{
				Kind:    KindCheckOutDays,
				RuleID:  r.ID,
				Message: fmt.Sprintf("check-out on %s is not allowed (allowed: %s)", day, weekdayList(r.Allowed)),
			})
		}
	}

	return violations
}

// CapacityViolation builds the unconditional property-capacity
// violation, which applies even when no max_guests rule row exists.
func CapacityViolation(maxGuests, requested int) Violation {
	return Violation{
		Kind:    KindMaxGuests,
		Message: fmt.Sprintf("property sleeps at most %d guest(s), requested %d", maxGuests, requested),
	}
}

func weekdayList(s WeekdaySet) string {
	days := s.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
