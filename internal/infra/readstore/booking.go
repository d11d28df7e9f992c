package readstore

import (
	"context"
	"strings"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findBookingViewByIDSQL = `
SELECT b.id, b.property_id, p.name, b.guest_id, g.name,
       b.check_in, b.check_out, b.adults, b.children,
       b.base_price_cents, b.total_price_cents, b.currency,
       b.status, b.payment_status, b.special_requests, b.cancellation_reason,
       b.confirmed_at, b.checked_in_at, b.checked_out_at, b.cancelled_at,
       b.created_at, b.updated_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
JOIN guests g ON g.id = b.guest_id
WHERE b.id = $1
`

const findBookingEntityByIDSQL = `
SELECT id, property_id, guest_id, check_in, check_out, adults, children,
       base_price_cents, total_price_cents, currency, status, payment_status,
       special_requests, cancellation_reason,
       confirmed_at, checked_in_at, checked_out_at, cancelled_at,
       created_at, updated_at
FROM bookings
WHERE id = $1
`

const findPriceLinesSQL = `
SELECT line_type, description, quantity, unit_price_cents, amount_cents
FROM booking_price_lines
WHERE booking_id = $1
ORDER BY line_no
`

// activeStatusList renders booking.ActiveStatuses as a SQL IN list so
// the occupancy filter cannot drift from the domain definition.
var activeStatusList = func() string {
	statuses := booking.ActiveStatuses()
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = "'" + s.String() + "'"
	}
	return strings.Join(quoted, ", ")
}()

// Half-open overlap: [a,b) and [c,d) overlap iff a < d AND c < b. Only
// bookings in the active status set occupy dates.
var findConflictsSQL = `
SELECT id, check_in, check_out, status
FROM bookings
WHERE property_id = $1
  AND status IN (` + activeStatusList + `)
  AND check_in < $3
  AND check_out > $2
ORDER BY check_in
`

var findOccupiedRangesSQL = `
SELECT check_in, check_out
FROM bookings
WHERE property_id = $1
  AND status IN (` + activeStatusList + `)
  AND check_in < $3
  AND check_out > $2
ORDER BY check_in
`

const findBookingsByGuestFirstPageSQL = `
SELECT b.id, b.property_id, p.name, b.check_in, b.check_out,
       b.status, b.total_price_cents, b.currency, b.created_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.guest_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2
`

const findBookingsByGuestKeysetSQL = `
SELECT b.id, b.property_id, p.name, b.check_in, b.check_out,
       b.status, b.total_price_cents, b.currency, b.created_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.guest_id = $1
  AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view               queries.BookingView
		checkIn, checkOut  pgtype.Date
		specialRequests    pgtype.Text
		cancellationReason pgtype.Text
		confirmedAt        pgtype.Timestamptz
		checkedInAt        pgtype.Timestamptz
		checkedOutAt       pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBookingViewByIDSQL, id).Scan(
		&view.ID, &view.PropertyID, &view.PropertyName, &view.GuestID, &view.GuestName,
		&checkIn, &checkOut, &view.Adults, &view.Children,
		&view.BasePriceCents, &view.TotalPriceCents, &view.Currency,
		&view.Status, &view.PaymentStatus, &specialRequests, &cancellationReason,
		&confirmedAt, &checkedInAt, &checkedOutAt, &cancelledAt,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	view.Nights = int(view.CheckOut.Sub(view.CheckIn) / (24 * time.Hour))
	view.SpecialRequests = pgconv.StringPtrFromPgtype(specialRequests)
	view.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	view.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	view.CheckedInAt = pgconv.TimePtrFromPgtype(checkedInAt)
	view.CheckedOutAt = pgconv.TimePtrFromPgtype(checkedOutAt)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)

	breakdown, err := r.findPriceLines(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Breakdown = breakdown

	return &view, nil
}

func (r *BookingReadStore) findPriceLines(ctx context.Context, bookingID uuid.UUID) ([]queries.BreakdownLineView, error) {
	rows, err := r.db.Query(ctx, findPriceLinesSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load price breakdown", err)
	}
	defer rows.Close()

	var lines []queries.BreakdownLineView
	for rows.Next() {
		var line queries.BreakdownLineView
		if err := rows.Scan(&line.Type, &line.Description, &line.Quantity, &line.UnitPriceCents, &line.AmountCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan price line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read price lines", err)
	}
	return lines, nil
}

// FindEntityByID rehydrates the domain entity for the command side.
func (r *BookingReadStore) FindEntityByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID          uuid.UUID
		propertyID         uuid.UUID
		guestID            uuid.UUID
		checkIn, checkOut  pgtype.Date
		adults, children   int
		basePriceCents     int64
		totalPriceCents    int64
		currency           string
		status             string
		paymentStatus      string
		specialRequests    pgtype.Text
		cancellationReason pgtype.Text
		confirmedAt        pgtype.Timestamptz
		checkedInAt        pgtype.Timestamptz
		checkedOutAt       pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
		createdAt          time.Time
		updatedAt          time.Time
	)
	err := r.db.QueryRow(ctx, findBookingEntityByIDSQL, id).Scan(
		&bookingID, &propertyID, &guestID, &checkIn, &checkOut, &adults, &children,
		&basePriceCents, &totalPriceCents, &currency, &status, &paymentStatus,
		&specialRequests, &cancellationReason,
		&confirmedAt, &checkedInAt, &checkedOutAt, &cancelledAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	stay, err := daterange.New(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid date range", err)
	}
	guests, err := booking.NewGuestCounts(adults, children)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid guest counts", err)
	}

	var requests booking.SpecialRequests
	if p := pgconv.StringPtrFromPgtype(specialRequests); p != nil {
		requests = booking.NewSpecialRequests(*p)
	}

	// Breakdown lines are immutable after creation; the command side
	// never rewrites them, so the entity carries none here.
	return booking.ReconstructBooking(
		bookingID, propertyID, guestID, stay, guests,
		money.New(basePriceCents), money.New(totalPriceCents), currency,
		booking.Status(status), booking.PaymentStatus(paymentStatus),
		requests, pgconv.StringPtrFromPgtype(cancellationReason),
		nil,
		pgconv.TimePtrFromPgtype(confirmedAt), pgconv.TimePtrFromPgtype(checkedInAt),
		pgconv.TimePtrFromPgtype(checkedOutAt), pgconv.TimePtrFromPgtype(cancelledAt),
		createdAt, updatedAt,
	), nil
}

func (r *BookingReadStore) FindConflicts(ctx context.Context, propertyID uuid.UUID, stay daterange.DateRange) ([]*queries.ConflictView, error) {
	rows, err := r.db.Query(ctx, findConflictsSQL, propertyID, pgconv.DateToPgtype(stay.CheckIn()), pgconv.DateToPgtype(stay.CheckOut()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking conflicts", err)
	}
	defer rows.Close()

	var conflicts []*queries.ConflictView
	for rows.Next() {
		var (
			c                 queries.ConflictView
			checkIn, checkOut pgtype.Date
		)
		if err := rows.Scan(&c.BookingID, &checkIn, &checkOut, &c.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking conflict", err)
		}
		c.CheckIn = pgconv.DateFromPgtype(checkIn)
		c.CheckOut = pgconv.DateFromPgtype(checkOut)
		conflicts = append(conflicts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking conflicts", err)
	}
	return conflicts, nil
}

func (r *BookingReadStore) FindOccupiedRanges(ctx context.Context, propertyID uuid.UUID, window daterange.DateRange) ([]daterange.DateRange, error) {
	rows, err := r.db.Query(ctx, findOccupiedRangesSQL, propertyID, pgconv.DateToPgtype(window.CheckIn()), pgconv.DateToPgtype(window.CheckOut()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupied ranges", err)
	}
	defer rows.Close()

	var ranges []daterange.DateRange
	for rows.Next() {
		var checkIn, checkOut pgtype.Date
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied range", err)
		}
		r, err := daterange.New(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid date range", err)
		}
		ranges = append(ranges, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied ranges", err)
	}
	return ranges, nil
}

func (r *BookingReadStore) FindByGuestFirstPage(ctx context.Context, guestID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByGuestFirstPageSQL, guestID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

func (r *BookingReadStore) FindByGuestKeyset(ctx context.Context, guestID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByGuestKeysetSQL, guestID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset page", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookingListItems(rows rowScanner) ([]*queries.BookingListItem, error) {
	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item              queries.BookingListItem
			checkIn, checkOut pgtype.Date
		)
		if err := rows.Scan(
			&item.ID, &item.PropertyID, &item.PropertyName, &checkIn, &checkOut,
			&item.Status, &item.TotalPriceCents, &item.Currency, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}
	return items, nil
}
