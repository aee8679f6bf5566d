/*
errors.go - Centralized error types for the timekeeping engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Callers (API handlers, dashboard client, CLI) wrap these with transport or
  presentation context.

ERROR CATEGORIES:
  1. Validation errors - Operator input rejected before submission
  2. Backend errors - The external API could not be reached or answered badly

NOTE:
  A malformed monthly-summary shape is deliberately NOT an error: the
  reconciler degrades to a partial or empty map instead (see summary.go).

USAGE:
  if errors.Is(err, engine.ErrEmptyField) {
      // prompt the operator to fill in both times
  }

SEE ALSO:
  - validate.go: Produces the validation errors
  - client/: Produces the backend errors
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyField is returned when a required time field is empty or blank.
	ErrEmptyField = errors.New("required field is empty")

	// ErrInvalidFormat is returned when a time value does not match HH:mm.
	ErrInvalidFormat = errors.New("invalid time format")

	// ErrInvalidTime is returned when a clock value is out of range.
	ErrInvalidTime = errors.New("invalid time of day")

	// ErrStaffNotFound is returned when a referenced staff member doesn't exist.
	ErrStaffNotFound = errors.New("staff not found")

	// ErrBackendUnavailable is returned when the backend cannot be reached or
	// answers with a server error. Salary callers recover by computing a local
	// estimate (see salary.go).
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// EmptyFieldError identifies which time field was left blank.
type EmptyFieldError struct {
	Field string // "startTime" or "endTime"
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

func (e *EmptyFieldError) Unwrap() error { return ErrEmptyField }

// InvalidFormatError identifies a value that failed the HH:mm format check.
type InvalidFormatError struct {
	Field string
	Value string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s %q is not a valid HH:mm time", e.Field, e.Value)
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is due to invalid operator input.
// Validation errors block submission but are never fatal.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyField) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidTime)
}
