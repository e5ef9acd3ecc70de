/*
errors.go - Centralized error types for the booking engine

PURPOSE:
  All service-level error types in one place. Storage faults never appear
  here: the record store absorbs them at its own boundary (see store.go).

ERROR CATEGORIES:
  1. Validation errors - Malformed field on entity construction
  2. Lookup errors     - Referenced id absent, or id collision on create
  3. Admission errors  - Capacity check failed for a requested stay

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, booking.ErrInsufficientCapacity) {
        var capErr *booking.CapacityError
        errors.As(err, &capErr) // requested vs available detail
    }

SEE ALSO:
  - entities.go: Returns validation errors from factories
  - service.go: Returns lookup and admission errors
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when an entity field fails construction checks.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced id matches no record.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when creating a record whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInsufficientCapacity is returned when a requested stay exceeds the
	// rooms still available for the hotel over the requested range.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError reports a single invalid field on entity construction.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NotFoundError identifies which kind of record was missing.
type NotFoundError struct {
	Kind string // "hotel", "customer", "reservation"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateIDError identifies an id collision on create.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// CapacityError provides the admission-check detail: how many rooms were
// requested and how many were actually available over the requested range.
// Available can be negative when prior data over-committed the hotel.
type CapacityError struct {
	HotelID   HotelID
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough rooms available for hotel %q: requested %d, available %d",
		e.HotelID, e.Requested, e.Available)
}

func (e *CapacityError) Unwrap() error { return ErrInsufficientCapacity }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrInsufficientCapacity)
}
