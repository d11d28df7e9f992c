package queries

import (
	"context"
	"time"

	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra"
	"staybook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrPropertyNotFound = errs.New("property not found")
	ErrInvalidDateRange = errs.New("invalid date range")
)

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
	// CheckAvailability is the pre-flight overlap probe. The create path
	// re-checks inside its transaction; this read is advisory only.
	CheckAvailability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityResult, error)
	Calendar(ctx context.Context, propertyID uuid.UUID, from time.Time, days int) ([]CalendarDay, error)
	AuditTrail(ctx context.Context, bookingID uuid.UUID) ([]*AuditEntryView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByGuestFirstPage(ctx context.Context, guestID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByGuestKeyset(ctx context.Context, guestID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindConflicts(ctx context.Context, propertyID uuid.UUID, stay daterange.DateRange) ([]*ConflictView, error)
	FindOccupiedRanges(ctx context.Context, propertyID uuid.UUID, window daterange.DateRange) ([]daterange.DateRange, error)
}

type AuditReadStore interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*AuditEntryView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	audit    AuditReadStore
}

func NewBookingQueries(bookings BookingReadStore, audit AuditReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, audit: audit}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, guestID uuid.UUID, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var items []*BookingListItem
	var err error
	if after == nil || after.After == "" {
		items, err = q.bookings.FindByGuestFirstPage(ctx, guestID, int32(limit)+1)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Wrap(decodeErr, "invalid pagination cursor")
		}
		items, err = q.bookings.FindByGuestKeyset(ctx, guestID, lastCreatedAt, lastID, int32(limit)+1)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}

func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityResult, error) {
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	conflicts, err := q.bookings.FindConflicts(ctx, propertyID, stay)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		PropertyID: propertyID,
		CheckIn:    stay.CheckIn(),
		CheckOut:   stay.CheckOut(),
		Available:  len(conflicts) == 0,
	}
	if len(conflicts) > 0 {
		result.Conflict = conflicts[0]
	}
	return result, nil
}

func (q *bookingQueriesImpl) Calendar(ctx context.Context, propertyID uuid.UUID, from time.Time, days int) ([]CalendarDay, error) {
	if days <= 0 {
		days = 31
	}
	from = daterange.Midnight(from)
	window, err := daterange.New(from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	occupied, err := q.bookings.FindOccupiedRanges(ctx, propertyID, window)
	if err != nil {
		return nil, err
	}

	calendar := make([]CalendarDay, 0, days)
	window.EachNight(func(date time.Time) {
		day := CalendarDay{Date: date}
		for _, r := range occupied {
			if r.Contains(date) {
				day.Occupied = true
				break
			}
		}
		calendar = append(calendar, day)
	})
	return calendar, nil
}

func (q *bookingQueriesImpl) AuditTrail(ctx context.Context, bookingID uuid.UUID) ([]*AuditEntryView, error) {
	return q.audit.FindByBookingID(ctx, bookingID)
}
