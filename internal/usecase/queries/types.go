package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data, breakdown included.
type BookingView struct {
	ID                 uuid.UUID           `json:"id"`
	PropertyID         uuid.UUID           `json:"property_id"`
	PropertyName       string              `json:"property_name"`
	GuestID            uuid.UUID           `json:"guest_id"`
	GuestName          string              `json:"guest_name"`
	CheckIn            time.Time           `json:"check_in"`
	CheckOut           time.Time           `json:"check_out"`
	Nights             int                 `json:"nights"`
	Adults             int                 `json:"adults"`
	Children           int                 `json:"children"`
	BasePriceCents     int64               `json:"base_price_cents"`
	TotalPriceCents    int64               `json:"total_price_cents"`
	Currency           string              `json:"currency"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	SpecialRequests    *string             `json:"special_requests,omitempty"`
	CancellationReason *string             `json:"cancellation_reason,omitempty"`
	Breakdown          []BreakdownLineView `json:"breakdown"`
	ConfirmedAt        *time.Time          `json:"confirmed_at,omitempty"`
	CheckedInAt        *time.Time          `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time          `json:"checked_out_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type BreakdownLineView struct {
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Quantity       int     `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	AmountCents    int64   `json:"amount_cents"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"property_id"`
	PropertyName    string    `json:"property_name"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}

// ConflictView identifies the booking blocking a candidate range.
type ConflictView struct {
	BookingID uuid.UUID `json:"booking_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Status    string    `json:"status"`
}

type AvailabilityResult struct {
	PropertyID uuid.UUID     `json:"property_id"`
	CheckIn    time.Time     `json:"check_in"`
	CheckOut   time.Time     `json:"check_out"`
	Available  bool          `json:"available"`
	Conflict   *ConflictView `json:"conflict,omitempty"`
}

// CalendarDay is one date of a property's availability calendar.
type CalendarDay struct {
	Date     time.Time `json:"date"`
	Occupied bool      `json:"occupied"`
}

type AuditEntryView struct {
	ID            uuid.UUID      `json:"id"`
	BookingID     uuid.UUID      `json:"booking_id"`
	Action        string         `json:"action"`
	EntityType    string         `json:"entity_type"`
	EntityID      uuid.UUID      `json:"entity_id"`
	OldValues     map[string]any `json:"old_values,omitempty"`
	NewValues     map[string]any `json:"new_values,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
