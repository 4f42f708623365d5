/*
errors.go - Centralized error types for the lease engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every engine error is a caller-side input defect: there is no retryable
  error class inside the schedule computation.

ERROR CATEGORIES:
  1. Validation errors - Invalid ScheduleInput (dates, index, cadence, horizon)
  2. Timeline errors - The billable window collapsed to nothing
  3. Store errors - Missing leases or index series

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, generic.ErrEndBeforeStart) {
        // surface "cannot compute schedule: end date before start date"
    }

SEE ALSO:
  - rent/validate.go: Produces the validation errors
  - api/handlers.go: Maps errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEndBeforeStart is returned when the lease end date precedes its start.
	ErrEndBeforeStart = errors.New("end date before start date")

	// ErrInvalidBaseIndex is returned when the base index value is not positive.
	ErrInvalidBaseIndex = errors.New("base index value must be positive")

	// ErrInvalidFrequency is returned for a payment frequency other than
	// monthly or quarterly.
	ErrInvalidFrequency = errors.New("payment frequency must be monthly or quarterly")

	// ErrInvalidHorizon is returned when the horizon is not a positive number of years.
	ErrInvalidHorizon = errors.New("horizon years must be positive")

	// ErrNegativeAmount is returned when a count or lump sum that must be
	// non-negative (deposit, franchise, incentive) is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrEmptyTimeline is returned when no period overlaps the billable window.
	ErrEmptyTimeline = errors.New("empty timeline: billable window has no days")

	// ErrLeaseNotFound is returned when a saved lease doesn't exist.
	ErrLeaseNotFound = errors.New("lease not found")

	// ErrIndexSeriesNotFound is returned when no points exist for an index type.
	ErrIndexSeriesNotFound = errors.New("index series not found")

	// ErrNoBaseIndex is returned when a series has no point on or before
	// the lease start date.
	ErrNoBaseIndex = errors.New("no published index on or before lease start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending input field.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TimelineError reports the window that produced no billable period.
type TimelineError struct {
	Start TimePoint
	Cap   TimePoint
}

func (e *TimelineError) Error() string {
	return fmt.Sprintf("%v: start %s, horizon cap %s", ErrEmptyTimeline, e.Start, e.Cap)
}

func (e *TimelineError) Unwrap() error {
	return ErrEmptyTimeline
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidBaseIndex) ||
		errors.Is(err, ErrInvalidFrequency) ||
		errors.Is(err, ErrInvalidHorizon) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrEmptyTimeline) ||
		errors.Is(err, ErrNoBaseIndex)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLeaseNotFound) ||
		errors.Is(err, ErrIndexSeriesNotFound)
}
