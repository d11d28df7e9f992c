package request

import (
	"strings"
	"time"

	"staybook/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	PropertyID      uuid.UUID `json:"property_id" binding:"required"`
	GuestID         uuid.UUID `json:"guest_id" binding:"required"`
	CheckIn         string    `json:"check_in" binding:"required"`
	CheckOut        string    `json:"check_out" binding:"required"`
	Adults          int       `json:"adults" binding:"required,min=1"`
	Children        int       `json:"children" binding:"min=0"`
	SpecialRequests *string   `json:"special_requests,omitempty" binding:"omitempty,max=2000"`
}

// ToInput parses the calendar dates. Deeper validation (past dates,
// stay caps, capacity) belongs to the command layer.
func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}

	requests := ""
	if r.SpecialRequests != nil {
		requests = strings.TrimSpace(*r.SpecialRequests)
	}

	return commands.CreateBookingInput{
		PropertyID:      r.PropertyID,
		GuestID:         r.GuestID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          r.Adults,
		Children:        r.Children,
		SpecialRequests: requests,
	}, nil
}

type UpdateBookingRequest struct {
	Status          *string `json:"status,omitempty"`
	PaymentStatus   *string `json:"payment_status,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty" binding:"omitempty,max=2000"`
	Adults          *int    `json:"adults,omitempty" binding:"omitempty,min=1"`
	Children        *int    `json:"children,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateBookingRequest) ToInput() commands.UpdateBookingInput {
	return commands.UpdateBookingInput{
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		SpecialRequests: r.SpecialRequests,
		Adults:          r.Adults,
		Children:        r.Children,
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
