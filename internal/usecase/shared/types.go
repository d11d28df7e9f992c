package shared

import (
	"time"

	"github.com/google/uuid"
)

type PropertySnapshot struct {
	ID        uuid.UUID
	Name      string
	MaxGuests int
	Active    bool
	Currency  string
}

type GuestSnapshot struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Blacklisted bool
}

// BookingConflict is the minimal view of an existing active booking
// returned by overlap queries.
type BookingConflict struct {
	ID       uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
	Status   string
}

// AuditEntry is one immutable audit-trail record. Old/new values and
// changed fields are only present for mutations.
type AuditEntry struct {
	BookingID     uuid.UUID
	Action        string
	EntityType    string
	EntityID      uuid.UUID
	OldValues     map[string]any
	NewValues     map[string]any
	ChangedFields []string
}

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionCancel = "cancel"

	AuditEntityBooking = "booking"
)
