package domain

import (
	"errors"
	"fmt"
)

var (
	ErrVillaNotFound    = errors.New("villa not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrGuestLimit       = errors.New("guest count exceeds villa capacity")
)

// MissingFieldError reports the first required field absent from a
// create-booking request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// DateConflictError carries the id of the active booking that already
// occupies part of the requested range.
type DateConflictError struct {
	ConflictID string
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("dates already booked by %s", e.ConflictID)
}

// InvalidTransitionError reports a status change the lifecycle does not
// allow, including self-transitions and transitions out of terminal states.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// PersistenceError wraps a backend failure. Callers see the failed
// operation, never backend internals.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
