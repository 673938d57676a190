/*
lifecycle.go - Period report state machine

PURPOSE:
  Owns the report entity's lifecycle:

    draft ──submit──▶ submitted ──approve──▶ approved
                          │  ▲
                     reject  │ submit (resubmission)
                          ▼  │
                        rejected

  plus draft-only soft deletion. The legal-transition set is an explicit
  table (state x action -> handler), not scattered conditionals, so it is
  exhaustively testable.

IDEMPOTENT RESUBMISSION:
  A rejected report is edited and resubmitted: submission_count increments,
  last_submitted_at updates, and the rejection audit fields are kept as
  history - nothing is cleared.

UNIQUENESS:
  CreateDraft checks the period slot first and fails with
  DuplicatePeriodError when occupied. The store's unique constraint backs
  this up against concurrent creates; a constraint violation surfaces as
  the same error, never as a silent overwrite.

RATE RECOMPUTATION:
  Every field edit while the report is editable re-derives TF/TG when any
  of accidents, lost workdays, or hours worked changed.

SEE ALSO:
  - draft.go: Seeds new drafts via the auto-populator
  - errors.go: ValidationError, ForbiddenOperationError, DuplicatePeriodError
*/
package hse

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// ACTIONS
// =============================================================================

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

// TransitionPayload carries action-specific data. Only rejection uses it.
type TransitionPayload struct {
	Reason string
}

// =============================================================================
// TRANSITION TABLE
// =============================================================================

type transitionKey struct {
	Status ReportStatus
	Action Action
}

type transitionFunc func(m *LifecycleManager, r *PeriodReport, actor Actor, payload TransitionPayload) error

// transitions is the complete legal-transition set. Any (status, action)
// pair absent from this table is a ForbiddenOperation.
var transitions = map[transitionKey]transitionFunc{
	{ReportDraft, ActionSubmit}:      (*LifecycleManager).submit,
	{ReportRejected, ActionSubmit}:   (*LifecycleManager).resubmit,
	{ReportSubmitted, ActionApprove}: (*LifecycleManager).approve,
	{ReportSubmitted, ActionReject}:  (*LifecycleManager).reject,
	{ReportDraft, ActionDelete}:      (*LifecycleManager).softDelete,
}

// LegalActions returns the actions permitted from a status, for UI and
// exhaustive tests.
func LegalActions(status ReportStatus) []Action {
	var actions []Action
	for _, a := range []Action{ActionSubmit, ActionApprove, ActionReject, ActionDelete} {
		if _, ok := transitions[transitionKey{status, a}]; ok {
			actions = append(actions, a)
		}
	}
	return actions
}

// =============================================================================
// LIFECYCLE MANAGER
// =============================================================================

// LifecycleManager drives report lifecycle transitions and persists the
// results through the ReportStore.
type LifecycleManager struct {
	Reports ReportStore
	Drafts  *DraftBuilder

	// Clock defaults to time.Now. Injected for tests.
	Clock func() time.Time

	// NewID defaults to a timestamp-derived ID. Injected for tests.
	NewID func() ReportID
}

func (m *LifecycleManager) now() time.Time {
	if m.Clock != nil {
		return m.Clock()
	}
	return time.Now().UTC()
}

func (m *LifecycleManager) newID() ReportID {
	if m.NewID != nil {
		return m.NewID()
	}
	return ReportID(fmt.Sprintf("rep-%d", time.Now().UnixNano()))
}

// CreateDraft seeds a new draft via the auto-populator and persists it.
// Fails with DuplicatePeriodError while a non-deleted report occupies the
// (project, period) slot; the caller must fetch and edit that report
// instead.
func (m *LifecycleManager) CreateDraft(ctx context.Context, projectID ProjectID, period PeriodRef, submitter Actor) (*PeriodReport, error) {
	existing, err := m.Reports.FindReport(ctx, projectID, period.Number, period.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicatePeriodError{
			ProjectID:    projectID,
			PeriodNumber: period.Number,
			PeriodYear:   period.Year,
			ExistingID:   existing.ID,
		}
	}

	report, err := m.Drafts.BuildDraft(ctx, projectID, period)
	if err != nil {
		return nil, err
	}

	now := m.now()
	report.ID = m.newID()
	report.SubmittedBy = submitter.ID
	report.SubmissionCount = 1
	report.CreatedAt = now
	report.UpdatedAt = now

	// The store's unique constraint is the concurrency guard: a racing
	// create surfaces ErrDuplicatePeriod here.
	if err := m.Reports.SaveReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Transition applies an action to a report. Illegal (status, action)
// pairs fail with ForbiddenOperationError and leave the report unchanged.
func (m *LifecycleManager) Transition(ctx context.Context, report *PeriodReport, action Action, actor Actor, payload TransitionPayload) (*PeriodReport, error) {
	fn, ok := transitions[transitionKey{report.Status, action}]
	if !ok {
		return nil, &ForbiddenOperationError{Status: report.Status, Action: action}
	}

	updated := *report
	if err := fn(m, &updated, actor, payload); err != nil {
		return nil, err
	}
	updated.UpdatedAt = m.now()

	if err := m.Reports.SaveReport(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// =============================================================================
// TRANSITION HANDLERS
// =============================================================================

func (m *LifecycleManager) submit(r *PeriodReport, _ Actor, _ TransitionPayload) error {
	if err := validateSubmittable(r); err != nil {
		return err
	}
	now := m.now()
	r.Status = ReportSubmitted
	r.LastSubmittedAt = &now
	return nil
}

// resubmit is submit from rejected: the counter increments and the
// rejection audit fields stay as history.
func (m *LifecycleManager) resubmit(r *PeriodReport, _ Actor, _ TransitionPayload) error {
	if err := validateSubmittable(r); err != nil {
		return err
	}
	now := m.now()
	r.Status = ReportSubmitted
	r.SubmissionCount++
	r.LastSubmittedAt = &now
	return nil
}

func (m *LifecycleManager) approve(r *PeriodReport, actor Actor, _ TransitionPayload) error {
	if !actor.CanApprove() {
		return &ForbiddenOperationError{Status: r.Status, Action: ActionApprove, Reason: "actor is not an approver"}
	}
	now := m.now()
	r.Status = ReportApproved
	r.ApprovedBy = actor.ID
	r.ApprovedAt = &now
	return nil
}

func (m *LifecycleManager) reject(r *PeriodReport, actor Actor, payload TransitionPayload) error {
	if !actor.CanApprove() {
		return &ForbiddenOperationError{Status: r.Status, Action: ActionReject, Reason: "actor is not an approver"}
	}
	if payload.Reason == "" {
		return &ValidationError{Field: "rejection_reason", Reason: "must not be empty"}
	}
	now := m.now()
	r.Status = ReportRejected
	r.RejectionReason = payload.Reason
	r.RejectedBy = actor.ID
	r.RejectedAt = &now
	return nil
}

func (m *LifecycleManager) softDelete(r *PeriodReport, _ Actor, _ TransitionPayload) error {
	r.Deleted = true
	return nil
}

func validateSubmittable(r *PeriodReport) error {
	if r.ProjectID == "" {
		return &ValidationError{Field: "project_id", Reason: "required"}
	}
	if !r.Period.Resolved() {
		return &ValidationError{Field: "period", Reason: "period number and bounds must be resolved"}
	}
	return nil
}

// =============================================================================
// FIELD EDITS
// =============================================================================

// ReportEdit carries a partial update to an editable report.
type ReportEdit struct {
	Values map[Field]Value
	Notes  *string
}

// Edit applies field changes to a draft or rejected report, re-deriving
// TF/TG when any rate input changed, and persists the result. Only
// submitter-side actors may edit; approvers send a report back through
// rejection instead.
func (m *LifecycleManager) Edit(ctx context.Context, report *PeriodReport, edit ReportEdit, actor Actor) (*PeriodReport, error) {
	if report.Status != ReportDraft && report.Status != ReportRejected {
		return nil, &ForbiddenOperationError{Status: report.Status, Action: "edit", Reason: "report is not editable"}
	}
	if !actor.CanEdit() {
		return nil, &ForbiddenOperationError{Status: report.Status, Action: "edit", Reason: "role cannot edit reports"}
	}

	updated := *report
	for field, value := range edit.Values {
		updated.SetValue(field, value)
	}
	if edit.Notes != nil {
		updated.Notes = *edit.Notes
	}

	if rateInputsChanged(report, &updated) {
		rates := ComputeRates(updated.Accidents, updated.LostWorkdays, updated.HoursWorked)
		updated.TFValue = rates.TF
		updated.TGValue = rates.TG
	}

	updated.UpdatedAt = m.now()
	if err := m.Reports.SaveReport(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func rateInputsChanged(before, after *PeriodReport) bool {
	return before.Accidents != after.Accidents ||
		before.LostWorkdays != after.LostWorkdays ||
		!before.HoursWorked.Equal(after.HoursWorked)
}
