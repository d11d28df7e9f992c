package booking

import (
	"errors"
)

type GuestCounts struct {
	adults   int
	children int
}

func NewGuestCounts(adults, children int) (GuestCounts, error) {
	if adults < 1 {
		return GuestCounts{}, errors.New("at least one adult guest is required")
	}
	if children < 0 {
		return GuestCounts{}, errors.New("children count cannot be negative")
	}
	return GuestCounts{adults: adults, children: children}, nil
}

func (g GuestCounts) Adults() int {
	return g.adults
}

func (g GuestCounts) Children() int {
	return g.children
}

func (g GuestCounts) Total() int {
	return g.adults + g.children
}

type SpecialRequests struct {
	value string
}

func NewSpecialRequests(value string) SpecialRequests {
	return SpecialRequests{value: value}
}

func (s SpecialRequests) String() string {
	return s.value
}

func (s SpecialRequests) IsEmpty() bool {
	return s.value == ""
}
