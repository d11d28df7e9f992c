package commands

import (
	"fmt"
	"strings"

	"staybook/internal/domain/restriction"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"
)

// Typed business-rule failures. Each wraps its pkg/errs sentinel so
// callers can branch on errors.Is for the kind and errors.As for the
// detail; none of them is an infrastructure fault.

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated field, not just the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return errs.ErrDomainValidation
}

// ConflictError carries the bookings occupying the requested range.
type ConflictError struct {
	Conflicts []shared.BookingConflict
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return "requested dates are no longer available"
	}
	c := e.Conflicts[0]
	return fmt.Sprintf("requested dates overlap booking %s (%s to %s)",
		c.ID, c.CheckIn.Format("2006-01-02"), c.CheckOut.Format("2006-01-02"))
}

func (e *ConflictError) Unwrap() error {
	return errs.ErrBookingConflict
}

// RestrictionError carries the full violation list from the evaluator.
type RestrictionError struct {
	Violations []restriction.Violation
}

func (e *RestrictionError) Error() string {
	kinds := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		kinds[i] = string(v.Kind)
	}
	return fmt.Sprintf("booking blocked by restrictions: %s", strings.Join(kinds, ", "))
}

func (e *RestrictionError) Unwrap() error {
	return errs.ErrRestrictionBlocked
}

// StateError reports an illegal status transition.
type StateError struct {
	From string
	To   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}

func (e *StateError) Unwrap() error {
	return errs.ErrInvalidTransition
}
