/*
errors.go - Centralized error types for the HSE engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP status codes; the engine itself never
  retries and never persists partial state alongside an error.

ERROR CATEGORIES:
  1. Validation errors - required period fields missing, empty reasons
  2. Lifecycle errors  - transition attempted from an incompatible state
  3. Uniqueness errors - second report for an already-taken period
  4. Not-found errors  - missing projects, reports, entries

DATA ABSENCE IS NOT AN ERROR:
  Zero source rows for a period yields zero/null aggregates by design.
  None of the aggregators return an error for empty input.

USAGE:
  if errors.Is(err, hse.ErrDuplicatePeriod) {
      // tell the caller to fetch and edit the existing draft
  }

SEE ALSO:
  - lifecycle.go: Produces most of these errors
  - store/sqlite: Surfaces unique-constraint violations as ErrDuplicatePeriod
*/
package hse

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when required fields are missing or
	// non-empty-string constraints are violated.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicatePeriod is returned when creating a report for a
	// (project, period number, period year) slot that already holds a
	// non-deleted report. Never auto-merged or silently resolved.
	ErrDuplicatePeriod = errors.New("period report already exists")

	// ErrForbiddenOperation is returned when a lifecycle transition is
	// attempted from an incompatible state, or by an actor whose role
	// does not permit it. The report is left unchanged.
	ErrForbiddenOperation = errors.New("operation forbidden")

	// ErrReportNotFound is returned when a referenced report doesn't exist.
	ErrReportNotFound = errors.New("report not found")

	// ErrProjectNotFound is returned when a referenced project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrEntryNotFound is returned when a referenced daily entry doesn't exist.
	ErrEntryNotFound = errors.New("daily entry not found")

	// ErrDuplicateEntry is returned when a second daily entry is created
	// for the same (project, calendar date).
	ErrDuplicateEntry = errors.New("daily entry already exists for date")

	// ErrInvalidPeriod is returned when a period reference is malformed
	// (week number out of range, zero bounds).
	ErrInvalidPeriod = errors.New("invalid period")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DuplicatePeriodError identifies the report already occupying the slot.
type DuplicatePeriodError struct {
	ProjectID    ProjectID
	PeriodNumber int
	PeriodYear   int
	ExistingID   ReportID
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("period report already exists: project %s week %d/%d (report %s)",
		e.ProjectID, e.PeriodNumber, e.PeriodYear, e.ExistingID)
}

func (e *DuplicatePeriodError) Unwrap() error { return ErrDuplicatePeriod }

// ForbiddenOperationError describes the rejected transition.
type ForbiddenOperationError struct {
	Status ReportStatus
	Action Action
	Reason string
}

func (e *ForbiddenOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation forbidden: %s in status %s: %s", e.Action, e.Status, e.Reason)
	}
	return fmt.Sprintf("operation forbidden: %s in status %s", e.Action, e.Status)
}

func (e *ForbiddenOperationError) Unwrap() error { return ErrForbiddenOperation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine or storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicatePeriod) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

// IsForbidden returns true if the error is a rejected lifecycle operation.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbiddenOperation)
}
