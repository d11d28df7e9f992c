package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/restriction"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	PropertyID      uuid.UUID
	GuestID         uuid.UUID
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	SpecialRequests string
}

// UpdateBookingInput is the allow-list of mutable fields. Nil leaves a
// field untouched.
type UpdateBookingInput struct {
	Status          *string
	PaymentStatus   *string
	SpecialRequests *string
	Adults          *int
	Children        *int
}

type BookingCommands interface {
	Create(ctx context.Context, input CreateBookingInput) (*queries.BookingView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	queries    queries.BookingQueries
	calculator *pricing.Calculator
	clock      clock.Clock
	cfg        config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	calculator *pricing.Calculator,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		queries:    bookingQueries,
		calculator: calculator,
		clock:      clk,
		cfg:        cfg,
	}
}

// Create runs the full decision pass. Field validation and the
// property/guest policy gates run outside the transaction; the conflict
// check, restriction pass, pricing and insert run inside one
// advisory-locked transaction so no concurrent create for the same
// property can interleave between check and insert.
func (c *bookingCommandsImpl) Create(ctx context.Context, input CreateBookingInput) (*queries.BookingView, error) {
	today := clock.Today(c.clock)

	if violations := c.validateCreateInput(input, today); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	stay, err := daterange.New(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, &ValidationError{Violations: []FieldViolation{{Field: "check_out", Message: err.Error()}}}
	}
	guests, err := booking.NewGuestCounts(input.Adults, input.Children)
	if err != nil {
		return nil, &ValidationError{Violations: []FieldViolation{{Field: "adults", Message: err.Error()}}}
	}

	propertySnap, err := c.loadBookableProperty(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := c.ensureBookableGuest(ctx, input.GuestID); err != nil {
		return nil, err
	}

	var bookingID uuid.UUID
	err = c.uow.WithinPropertyLock(ctx, input.PropertyID, func(ctx context.Context, tx shared.Tx) error {
		conflicts, err := tx.Reads().Conflicts(ctx, input.PropertyID, stay)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		restrictions, err := tx.Reads().Restrictions(ctx, input.PropertyID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		violations := restriction.Evaluate(restrictions, stay, guests.Total(), today)
		if guests.Total() > propertySnap.MaxGuests {
			violations = append(violations, restriction.CapacityViolation(propertySnap.MaxGuests, guests.Total()))
		}
		if len(violations) > 0 {
			return &RestrictionError{Violations: violations}
		}

		rules, err := tx.Reads().PricingRules(ctx, input.PropertyID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		quote, err := c.calculator.Calculate(rules, stay)
		if err != nil {
			return errs.ErrNoBaseRate
		}

		entity, err := booking.NewBooking(
			input.PropertyID, input.GuestID, stay, guests, quote,
			booking.NewSpecialRequests(input.SpecialRequests), c.clock.Now(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return &ConflictError{}
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		bookingID = id

		c.recordAudit(ctx, tx, shared.AuditEntry{
			BookingID:  id,
			Action:     shared.AuditActionCreate,
			EntityType: shared.AuditEntityBooking,
			EntityID:   id,
			NewValues: map[string]any{
				"property_id":       entity.PropertyID().String(),
				"guest_id":          entity.GuestID().String(),
				"check_in":          stay.CheckIn().Format("2006-01-02"),
				"check_out":         stay.CheckOut().Format("2006-01-02"),
				"status":            entity.Status().String(),
				"total_price_cents": entity.TotalPrice().Cents(),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the fully materialized view
	view, err := c.queries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Update applies the allow-list diff. An empty diff is a no-op success
// with no audit record; a status change must be legal in the state
// machine.
func (c *bookingCommandsImpl) Update(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*queries.BookingView, error) {
	if violations := validateUpdateInput(input); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		prior := entity.Status()
		diff, err := c.applyUpdate(entity, input)
		if err != nil {
			return err
		}
		if len(diff.changed) == 0 {
			return nil
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), entity, prior); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return &StateError{From: prior.String(), To: entity.Status().String()}
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		c.recordAudit(ctx, tx, shared.AuditEntry{
			BookingID:     id,
			Action:        shared.AuditActionUpdate,
			EntityType:    shared.AuditEntityBooking,
			EntityID:      id,
			OldValues:     diff.oldValues,
			NewValues:     diff.newValues,
			ChangedFields: diff.changed,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.queries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Cancel is a conditional one-way transition recording the reason.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, reason string) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		prior := entity.Status()
		oldStatus := prior.String()
		if err := entity.Cancel(reason, c.clock.Now()); err != nil {
			return &StateError{From: oldStatus, To: booking.StatusCancelled.String()}
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), entity, prior); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return &StateError{From: oldStatus, To: booking.StatusCancelled.String()}
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		c.recordAudit(ctx, tx, shared.AuditEntry{
			BookingID:     id,
			Action:        shared.AuditActionCancel,
			EntityType:    shared.AuditEntityBooking,
			EntityID:      id,
			OldValues:     map[string]any{"status": oldStatus},
			NewValues:     map[string]any{"status": booking.StatusCancelled.String(), "cancellation_reason": reason},
			ChangedFields: []string{"status", "cancellation_reason"},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.queries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) validateCreateInput(input CreateBookingInput, today time.Time) []FieldViolation {
	var violations []FieldViolation

	if input.PropertyID == uuid.Nil {
		violations = append(violations, FieldViolation{Field: "property_id", Message: "property_id is required"})
	}
	if input.GuestID == uuid.Nil {
		violations = append(violations, FieldViolation{Field: "guest_id", Message: "guest_id is required"})
	}

	checkIn := daterange.Midnight(input.CheckIn)
	checkOut := daterange.Midnight(input.CheckOut)
	if input.CheckIn.IsZero() {
		violations = append(violations, FieldViolation{Field: "check_in", Message: "check_in is required"})
	} else if checkIn.Before(today) {
		violations = append(violations, FieldViolation{Field: "check_in", Message: "check_in cannot be in the past"})
	}
	if input.CheckOut.IsZero() {
		violations = append(violations, FieldViolation{Field: "check_out", Message: "check_out is required"})
	} else if !checkOut.After(checkIn) {
		violations = append(violations, FieldViolation{Field: "check_out", Message: "check_out must be after check_in"})
	} else if nights := int(checkOut.Sub(checkIn) / (24 * time.Hour)); nights > c.cfg.MaxStayNights {
		violations = append(violations, FieldViolation{
			Field:   "check_out",
			Message: "stay cannot exceed " + strconv.Itoa(c.cfg.MaxStayNights) + " nights",
		})
	}

	if input.Adults < 1 {
		violations = append(violations, FieldViolation{Field: "adults", Message: "at least one adult is required"})
	}
	if input.Children < 0 {
		violations = append(violations, FieldViolation{Field: "children", Message: "children cannot be negative"})
	}

	return violations
}

func validateUpdateInput(input UpdateBookingInput) []FieldViolation {
	var violations []FieldViolation
	if input.Status != nil && !booking.Status(*input.Status).IsValid() {
		violations = append(violations, FieldViolation{Field: "status", Message: "unknown status"})
	}
	if input.PaymentStatus != nil && !booking.PaymentStatus(*input.PaymentStatus).IsValid() {
		violations = append(violations, FieldViolation{Field: "payment_status", Message: "unknown payment status"})
	}
	if input.Adults != nil && *input.Adults < 1 {
		violations = append(violations, FieldViolation{Field: "adults", Message: "at least one adult is required"})
	}
	if input.Children != nil && *input.Children < 0 {
		violations = append(violations, FieldViolation{Field: "children", Message: "children cannot be negative"})
	}
	if (input.Adults == nil) != (input.Children == nil) {
		violations = append(violations, FieldViolation{Field: "adults", Message: "adults and children must be updated together"})
	}
	return violations
}

type updateDiff struct {
	changed   []string
	oldValues map[string]any
	newValues map[string]any
}

func (d *updateDiff) record(field string, oldValue, newValue any) {
	d.changed = append(d.changed, field)
	d.oldValues[field] = oldValue
	d.newValues[field] = newValue
}

// applyUpdate mutates the entity per the allow-list and reports the
// per-field diff. Unchanged values are skipped so identical input is a
// clean no-op.
func (c *bookingCommandsImpl) applyUpdate(entity *booking.Booking, input UpdateBookingInput) (*updateDiff, error) {
	diff := &updateDiff{
		oldValues: map[string]any{},
		newValues: map[string]any{},
	}
	now := c.clock.Now()

	if input.Status != nil {
		next := booking.Status(*input.Status)
		if next != entity.Status() {
			from := entity.Status().String()
			if err := entity.TransitionTo(next, now); err != nil {
				return nil, &StateError{From: from, To: next.String()}
			}
			diff.record("status", from, next.String())
		}
	}

	if input.PaymentStatus != nil {
		next := booking.PaymentStatus(*input.PaymentStatus)
		if next != entity.PaymentStatus() {
			old := entity.PaymentStatus().String()
			if err := entity.SetPaymentStatus(next, now); err != nil {
				return nil, &ValidationError{Violations: []FieldViolation{{Field: "payment_status", Message: err.Error()}}}
			}
			diff.record("payment_status", old, next.String())
		}
	}

	if input.SpecialRequests != nil && *input.SpecialRequests != entity.SpecialRequests().String() {
		old := entity.SpecialRequests().String()
		entity.SetSpecialRequests(booking.NewSpecialRequests(*input.SpecialRequests), now)
		diff.record("special_requests", old, *input.SpecialRequests)
	}

	if input.Adults != nil && input.Children != nil {
		counts, err := booking.NewGuestCounts(*input.Adults, *input.Children)
		if err != nil {
			return nil, &ValidationError{Violations: []FieldViolation{{Field: "adults", Message: err.Error()}}}
		}
		if counts != entity.Guests() {
			old := entity.Guests()
			entity.SetGuestCounts(counts, now)
			diff.record("adults", old.Adults(), counts.Adults())
			diff.record("children", old.Children(), counts.Children())
		}
	}

	return diff, nil
}

func (c *bookingCommandsImpl) loadBookableProperty(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	snap, err := c.uow.Reads().PropertyByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPropertyNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !snap.Active {
		return nil, errs.ErrPropertyInactive
	}
	return snap, nil
}

func (c *bookingCommandsImpl) ensureBookableGuest(ctx context.Context, id uuid.UUID) error {
	snap, err := c.uow.Reads().GuestByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrGuestNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.Blacklisted {
		return errs.ErrGuestBlacklisted
	}
	return nil
}

// Audit persistence is best-effort: a failed audit write is logged and
// never rolls back the booking itself.
func (c *bookingCommandsImpl) recordAudit(ctx context.Context, tx shared.Tx, entry shared.AuditEntry) {
	if err := tx.Audit().Record(ctx, tx.DB(), entry); err != nil {
		slog.Warn("failed to record audit entry",
			"booking_id", entry.BookingID,
			"action", entry.Action,
			"error", err)
	}
}
