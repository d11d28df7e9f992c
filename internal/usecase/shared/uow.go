package shared

import (
	"context"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/restriction"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinPropertyLock: Within plus a per-property advisory lock held
	// for the whole transaction. The booking decision (conflict check,
	// restriction pass, pricing, insert) runs here so two concurrent
	// requests for the same property never interleave between check and
	// insert.
	WithinPropertyLock(ctx context.Context, propertyID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Direct access to command reads for validation outside transactions
	Reads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Audit() AuditRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the read models the command side needs. Bound to a
// transaction via Tx.Reads() they observe the transaction's snapshot.
type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	GuestByID(ctx context.Context, id uuid.UUID) (*GuestSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Conflicts returns every active booking on the property whose
	// half-open range overlaps the candidate stay.
	Conflicts(ctx context.Context, propertyID uuid.UUID, stay daterange.DateRange) ([]BookingConflict, error)
	PricingRules(ctx context.Context, propertyID uuid.UUID) (pricing.RuleSet, error)
	Restrictions(ctx context.Context, propertyID uuid.UUID) (restriction.Set, error)
}

type BookingRepository interface {
	// Create inserts the booking and its breakdown lines as one unit.
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// Update persists the mutable columns of an already-loaded booking.
	// The write is conditional on the status the caller read; a zero-row
	// update means another transaction moved the booking first and
	// surfaces as a conflict kind.
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error
}

type AuditRepository interface {
	Record(ctx context.Context, tx db.DBTX, entry AuditEntry) error
}
