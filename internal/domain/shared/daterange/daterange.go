// Package daterange provides the half-open calendar interval used by
// availability, restriction and pricing math.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

// DateRange is [checkIn, checkOut): the check-out date itself is not an
// occupied night, so back-to-back stays sharing a boundary date never
// collide.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	checkIn = Midnight(checkIn)
	checkOut = Midnight(checkOut)
	if !checkOut.After(checkIn) {
		return DateRange{}, errors.New("check-out date must be after check-in date")
	}
	return DateRange{checkIn: checkIn, checkOut: checkOut}, nil
}

// Midnight truncates to a UTC calendar date. All range math happens on
// whole days.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) CheckIn() time.Time {
	return r.checkIn
}

func (r DateRange) CheckOut() time.Time {
	return r.checkOut
}

func (r DateRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn) / (24 * time.Hour))
}

// Overlaps applies the half-open rule: [a,b) and [c,d) overlap iff
// a < d && c < b.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// Contains reports whether date falls on an occupied night.
func (r DateRange) Contains(date time.Time) bool {
	d := Midnight(date)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

// EachNight visits every occupied date in order.
func (r DateRange) EachNight(fn func(date time.Time)) {
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

func (r DateRange) WeekendNights() int {
	n := 0
	r.EachNight(func(date time.Time) {
		switch date.Weekday() {
		case time.Saturday, time.Sunday:
			n++
		default:
		}
	})
	return n
}

// ToDaterange renders the Postgres daterange literal for the interval.
func (r DateRange) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format("2006-01-02"), r.checkOut.Format("2006-01-02"))
}

func (r DateRange) String() string {
	return r.ToDaterange()
}

// Window is an optional applicability window on a rule row. Nil bounds
// are unbounded; End is inclusive (it is a date column, not an instant).
type Window struct {
	Start *time.Time
	End   *time.Time
}

// CoversRange reports whether every night of r falls inside the window.
func (w Window) CoversRange(r DateRange) bool {
	if w.Start != nil && r.checkIn.Before(Midnight(*w.Start)) {
		return false
	}
	if w.End != nil {
		lastNight := r.checkOut.AddDate(0, 0, -1)
		if lastNight.After(Midnight(*w.End)) {
			return false
		}
	}
	return true
}

// CoversDate reports whether a single date falls inside the window.
func (w Window) CoversDate(date time.Time) bool {
	d := Midnight(date)
	if w.Start != nil && d.Before(Midnight(*w.Start)) {
		return false
	}
	if w.End != nil && d.After(Midnight(*w.End)) {
		return false
	}
	return true
}
