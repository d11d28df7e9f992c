package booking

import (
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrIllegalTransition    = errors.New("illegal booking status transition")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
	ErrNotCancellable       = errors.New("booking can no longer be cancelled")
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

type Booking struct {
	id                 uuid.UUID
	propertyID         uuid.UUID
	guestID            uuid.UUID
	stay               daterange.DateRange
	guests             GuestCounts
	basePrice          money.Money
	totalPrice         money.Money
	currency           string
	status             Status
	paymentStatus      PaymentStatus
	specialRequests    SpecialRequests
	cancellationReason *string
	breakdown          []pricing.Line
	confirmedAt        *time.Time
	checkedInAt        *time.Time
	checkedOutAt       *time.Time
	cancelledAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBooking materializes a booking that passed the full decision pass.
// It always starts pending; later states are reached only through the
// transition methods.
func NewBooking(
	propertyID, guestID uuid.UUID,
	stay daterange.DateRange,
	guests GuestCounts,
	quote pricing.Quote,
	requests SpecialRequests,
	now time.Time,
) (*Booking, error) {
	if quote.Total.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Booking{
		id:              uuid.New(),
		propertyID:      propertyID,
		guestID:         guestID,
		stay:            stay,
		guests:          guests,
		basePrice:       quote.Base,
		totalPrice:      quote.Total,
		currency:        quote.Currency,
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		specialRequests: requests,
		breakdown:       quote.Lines,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructBooking(
	id, propertyID, guestID uuid.UUID,
	stay daterange.DateRange,
	guests GuestCounts,
	basePrice, totalPrice money.Money,
	currency string,
	status Status,
	paymentStatus PaymentStatus,
	requests SpecialRequests,
	cancellationReason *string,
	breakdown []pricing.Line,
	confirmedAt, checkedInAt, checkedOutAt, cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		propertyID:         propertyID,
		guestID:            guestID,
		stay:               stay,
		guests:             guests,
		basePrice:          basePrice,
		totalPrice:         totalPrice,
		currency:           currency,
		status:             status,
		paymentStatus:      paymentStatus,
		specialRequests:    requests,
		cancellationReason: cancellationReason,
		breakdown:          breakdown,
		confirmedAt:        confirmedAt,
		checkedInAt:        checkedInAt,
		checkedOutAt:       checkedOutAt,
		cancelledAt:        cancelledAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// TransitionTo moves the booking along the state machine, stamping the
// matching transition timestamp.
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.status, next)
	}
	b.status = next
	b.updatedAt = now
	switch next {
	case StatusConfirmed:
		b.confirmedAt = &now
	case StatusCheckedIn:
		b.checkedInAt = &now
	case StatusCheckedOut:
		b.checkedOutAt = &now
	case StatusCancelled:
		b.cancelledAt = &now
	default:
	}
	return nil
}

// Cancel is a one-way conditional transition. It fails once the stay is
// checked out or already cancelled.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.status == StatusCheckedOut {
		return ErrNotCancellable
	}
	if err := b.TransitionTo(StatusCancelled, now); err != nil {
		return err
	}
	b.cancellationReason = &reason
	return nil
}

func (b *Booking) SetPaymentStatus(next PaymentStatus, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidPaymentStatus
	}
	b.paymentStatus = next
	b.updatedAt = now
	return nil
}

func (b *Booking) SetSpecialRequests(requests SpecialRequests, now time.Time) {
	b.specialRequests = requests
	b.updatedAt = now
}

func (b *Booking) SetGuestCounts(guests GuestCounts, now time.Time) {
	b.guests = guests
	b.updatedAt = now
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) PropertyID() uuid.UUID        { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) Stay() daterange.DateRange    { return b.stay }
func (b *Booking) Guests() GuestCounts          { return b.guests }
func (b *Booking) BasePrice() money.Money       { return b.basePrice }
func (b *Booking) TotalPrice() money.Money      { return b.totalPrice }
func (b *Booking) Currency() string             { return b.currency }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) SpecialRequests() SpecialRequests {
	return b.specialRequests
}
func (b *Booking) CancellationReason() *string { return b.cancellationReason }
func (b *Booking) Breakdown() []pricing.Line   { return b.breakdown }
func (b *Booking) ConfirmedAt() *time.Time     { return b.confirmedAt }
func (b *Booking) CheckedInAt() *time.Time     { return b.checkedInAt }
func (b *Booking) CheckedOutAt() *time.Time    { return b.checkedOutAt }
func (b *Booking) CancelledAt() *time.Time     { return b.cancelledAt }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
