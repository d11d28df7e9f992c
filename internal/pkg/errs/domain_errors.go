package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Property / guest errors
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyInactive = errors.New("property is not active")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrGuestBlacklisted = errors.New("guest is blacklisted")

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingConflict    = errors.New("booking conflict")
	ErrRestrictionBlocked = errors.New("booking blocked by restrictions")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// Pricing errors
	ErrNoBaseRate     = errors.New("no active base rate for property")
	ErrPricingFailure = errors.New("pricing calculation failed")

	// Validation errors
	ErrDomainValidation       = errors.New("domain validation error")
	ErrDomainValidationFailed = errors.New("domain validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
