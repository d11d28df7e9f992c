package response

import (
	"time"

	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID               `json:"id"`
	PropertyID         uuid.UUID               `json:"propertyId"`
	PropertyName       string                  `json:"propertyName"`
	GuestID            uuid.UUID               `json:"guestId"`
	GuestName          string                  `json:"guestName"`
	CheckIn            time.Time               `json:"checkIn"`
	CheckOut           time.Time               `json:"checkOut"`
	Nights             int                     `json:"nights"`
	Adults             int                     `json:"adults"`
	Children           int                     `json:"children"`
	BasePriceCents     int64                   `json:"basePriceCents"`
	TotalPriceCents    int64                   `json:"totalPriceCents"`
	Currency           string                  `json:"currency"`
	Status             string                  `json:"status"`
	PaymentStatus      string                  `json:"paymentStatus"`
	SpecialRequests    *string                 `json:"specialRequests,omitempty"`
	CancellationReason *string                 `json:"cancellationReason,omitempty"`
	Breakdown          []BreakdownLineResponse `json:"breakdown"`
	ConfirmedAt        *time.Time              `json:"confirmedAt,omitempty"`
	CheckedInAt        *time.Time              `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time              `json:"checkedOutAt,omitempty"`
	CancelledAt        *time.Time              `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

type BreakdownLineResponse struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	AmountCents    int64  `json:"amountCents"`
}

type BookingListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"propertyId"`
	PropertyName    string    `json:"propertyName"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"createdAt"`
}

type AvailabilityResponse struct {
	PropertyID uuid.UUID         `json:"propertyId"`
	CheckIn    time.Time         `json:"checkIn"`
	CheckOut   time.Time         `json:"checkOut"`
	Available  bool              `json:"available"`
	Conflict   *ConflictResponse `json:"conflict,omitempty"`
}

type ConflictResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	Status    string    `json:"status"`
}

type CalendarDayResponse struct {
	Date     time.Time `json:"date"`
	Occupied bool      `json:"occupied"`
}

type AuditEntryResponse struct {
	ID            uuid.UUID      `json:"id"`
	BookingID     uuid.UUID      `json:"bookingId"`
	Action        string         `json:"action"`
	EntityType    string         `json:"entityType"`
	EntityID      uuid.UUID      `json:"entityId"`
	OldValues     map[string]any `json:"oldValues,omitempty"`
	NewValues     map[string]any `json:"newValues,omitempty"`
	ChangedFields []string       `json:"changedFields,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// View structs and responses share field names, so the mapping is
// mechanical copier work.

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListItemResponse {
	var resp BookingListItemResponse
	_ = copier.Copy(&resp, item)
	return &resp
}

func FromBookingList(items []*queries.BookingListItem) []*BookingListItemResponse {
	resp := make([]*BookingListItemResponse, len(items))
	for i, item := range items {
		resp[i] = FromBookingListItem(item)
	}
	return resp
}

func FromAvailabilityResult(result *queries.AvailabilityResult) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, result)
	return &resp
}

func FromCalendar(days []queries.CalendarDay) []CalendarDayResponse {
	resp := make([]CalendarDayResponse, len(days))
	_ = copier.Copy(&resp, days)
	return resp
}

func FromAuditTrail(entries []*queries.AuditEntryView) []*AuditEntryResponse {
	resp := make([]*AuditEntryResponse, len(entries))
	for i, entry := range entries {
		var item AuditEntryResponse
		_ = copier.Copy(&item, entry)
		resp[i] = &item
	}
	return resp
}
