package repository

import (
	"context"

	"staybook/internal/domain/booking"
	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const insertBookingSQL = `
INSERT INTO bookings (
	id, property_id, guest_id, check_in, check_out, adults, children,
	base_price_cents, total_price_cents, currency, status, payment_status,
	special_requests, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id
`

const insertPriceLineSQL = `
INSERT INTO booking_price_lines (
	booking_id, line_no, line_type, description, quantity, unit_price_cents, amount_cents
) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const updateBookingSQL = `
UPDATE bookings
SET status = $2,
    payment_status = $3,
    adults = $4,
    children = $5,
    special_requests = $6,
    cancellation_reason = $7,
    confirmed_at = $8,
    checked_in_at = $9,
    checked_out_at = $10,
    cancelled_at = $11,
    updated_at = $12
WHERE id = $1
  AND status = $13
`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Create inserts the booking row and its breakdown lines. The caller's
// transaction (with the property advisory lock held) makes the pair
// all-or-nothing; the schema's overlap exclusion constraint is the last
// line of defense and surfaces as a conflict kind.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var requests *string
	if !b.SpecialRequests().IsEmpty() {
		s := b.SpecialRequests().String()
		requests = &s
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, insertBookingSQL,
		b.ID(), b.PropertyID(), b.GuestID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()), pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guests().Adults(), b.Guests().Children(),
		b.BasePrice().Cents(), b.TotalPrice().Cents(), b.Currency(),
		b.Status().String(), b.PaymentStatus().String(),
		pgconv.StringPtrToPgtype(requests),
		b.CreatedAt(), b.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	for i, line := range b.Breakdown() {
		_, err := tx.Exec(ctx, insertPriceLineSQL,
			id, i+1, string(line.Kind), line.Description,
			line.Quantity, line.UnitPrice.Cents(), line.Amount.Cents(),
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert price breakdown line", err)
		}
	}

	return id, nil
}

// Update performs a compare-and-set on the status read by the caller.
// ReadCommitted lets a concurrent transaction move the booking between
// our read and this write; the status predicate makes such a race a
// zero-row update instead of a silent overwrite.
func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error {
	var requests *string
	if !b.SpecialRequests().IsEmpty() {
		s := b.SpecialRequests().String()
		requests = &s
	}

	tag, err := tx.Exec(ctx, updateBookingSQL,
		b.ID(), b.Status().String(), b.PaymentStatus().String(),
		b.Guests().Adults(), b.Guests().Children(),
		pgconv.StringPtrToPgtype(requests),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
		pgconv.TimePtrToPgtype(b.ConfirmedAt()), pgconv.TimePtrToPgtype(b.CheckedInAt()),
		pgconv.TimePtrToPgtype(b.CheckedOutAt()), pgconv.TimePtrToPgtype(b.CancelledAt()),
		b.UpdatedAt(),
		expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed since read", nil, infra.KindConflict)
	}
	return nil
}
