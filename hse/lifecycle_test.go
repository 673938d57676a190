package hse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hse-engine/hse"
	"github.com/warp/hse-engine/hse/store"
)

// =============================================================================
// REPORT LIFECYCLE TESTS
// =============================================================================

var (
	submitter = hse.Actor{ID: "officer-1", Role: hse.RoleSubmitter}
	approver  = hse.Actor{ID: "manager-1", Role: hse.RoleApprover}
)

func newLifecycle(t *testing.T) (*hse.LifecycleManager, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	m := &hse.LifecycleManager{
		Reports: mem,
		Drafts: &hse.DraftBuilder{
			Entries:   mem,
			Trainings: mem,
			Awareness: mem,
			Permits:   mem,
			Rules:     hse.DefaultFieldRules(),
		},
	}
	return m, mem
}

func week23() hse.PeriodRef {
	return hse.DefaultWeekConfig().Resolve(hse.NewDate(2026, time.June, 6))
}

func createDraft(t *testing.T, m *hse.LifecycleManager, mem *store.Memory) *hse.PeriodReport {
	t.Helper()
	seedWeek(t, mem, "p1", week23())
	report, err := m.CreateDraft(context.Background(), "p1", week23(), submitter)
	require.NoError(t, err)
	return report
}

func TestLifecycle_ApprovalPath(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	assert.Equal(t, hse.ReportDraft, report.Status)
	assert.Equal(t, 1, report.SubmissionCount)
	assert.Equal(t, "officer-1", report.SubmittedBy)

	report, err := m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)
	assert.Equal(t, hse.ReportSubmitted, report.Status)
	require.NotNil(t, report.LastSubmittedAt)

	report, err = m.Transition(ctx, report, hse.ActionApprove, approver, hse.TransitionPayload{})
	require.NoError(t, err)
	assert.Equal(t, hse.ReportApproved, report.Status)
	assert.Equal(t, "manager-1", report.ApprovedBy)
	require.NotNil(t, report.ApprovedAt)
	assert.True(t, report.Finalized())
}

func TestLifecycle_RejectionAndResubmission(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	report, err := m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)

	// Reject with a reason
	report, err = m.Transition(ctx, report, hse.ActionReject, approver, hse.TransitionPayload{
		Reason: "missing signature",
	})
	require.NoError(t, err)
	assert.Equal(t, hse.ReportRejected, report.Status)
	assert.Equal(t, "missing signature", report.RejectionReason)
	assert.Equal(t, "manager-1", report.RejectedBy)

	// Resubmit: count increments, rejection history preserved
	report, err = m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)
	assert.Equal(t, hse.ReportSubmitted, report.Status)
	assert.Equal(t, 2, report.SubmissionCount)
	assert.Equal(t, "missing signature", report.RejectionReason)
	require.NotNil(t, report.RejectedAt)

	// Approve closes the loop
	report, err = m.Transition(ctx, report, hse.ActionApprove, approver, hse.TransitionPayload{})
	require.NoError(t, err)
	assert.Equal(t, hse.ReportApproved, report.Status)
}

func TestLifecycle_RejectRequiresReason(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	report, err := m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)

	_, err = m.Transition(ctx, report, hse.ActionReject, approver, hse.TransitionPayload{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, hse.ErrValidation))

	var verr *hse.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "rejection_reason", verr.Field)
}

func TestLifecycle_ApproveRequiresApproverRole(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	report, err := m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)

	_, err = m.Transition(ctx, report, hse.ActionApprove, submitter, hse.TransitionPayload{})
	assert.True(t, hse.IsForbidden(err))

	_, err = m.Transition(ctx, report, hse.ActionReject, submitter, hse.TransitionPayload{Reason: "nope"})
	assert.True(t, hse.IsForbidden(err))
}

func TestLifecycle_IllegalTransitions(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	// Approving a draft skips review
	_, err := m.Transition(ctx, report, hse.ActionApprove, approver, hse.TransitionPayload{})
	assert.True(t, hse.IsForbidden(err))

	report, err = m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)

	// Deleting a submitted report is forbidden
	_, err = m.Transition(ctx, report, hse.ActionDelete, submitter, hse.TransitionPayload{})
	require.Error(t, err)
	assert.True(t, hse.IsForbidden(err))

	var ferr *hse.ForbiddenOperationError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, hse.ReportSubmitted, ferr.Status)
	assert.Equal(t, hse.ActionDelete, ferr.Action)

	// Approved reports are terminal
	report, err = m.Transition(ctx, report, hse.ActionApprove, approver, hse.TransitionPayload{})
	require.NoError(t, err)
	for _, action := range []hse.Action{hse.ActionSubmit, hse.ActionApprove, hse.ActionReject, hse.ActionDelete} {
		_, err := m.Transition(ctx, report, action, approver, hse.TransitionPayload{})
		assert.Truef(t, hse.IsForbidden(err), "action %s on approved report should be forbidden", action)
	}
}

func TestLifecycle_DuplicatePeriod(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	first := createDraft(t, m, mem)

	_, err := m.CreateDraft(ctx, "p1", week23(), submitter)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hse.ErrDuplicatePeriod))

	var derr *hse.DuplicatePeriodError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, hse.ProjectID("p1"), derr.ProjectID)
	assert.Equal(t, week23().Number, derr.PeriodNumber)
	assert.Equal(t, first.ID, derr.ExistingID)
}

func TestLifecycle_DeleteFreesPeriodSlot(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	report, err := m.Transition(ctx, report, hse.ActionDelete, submitter, hse.TransitionPayload{})
	require.NoError(t, err)
	assert.True(t, report.Deleted)

	// The slot is free again
	_, err = m.CreateDraft(ctx, "p1", week23(), submitter)
	require.NoError(t, err)
}

func TestLifecycle_EditRecomputesRates(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	// Seeded week: 1 accident, 3 lost days, 1200 hours
	edit := hse.ReportEdit{
		Values: map[hse.Field]hse.Value{
			hse.FieldAccidents:   hse.ValueOfInt(2),
			hse.FieldHoursWorked: hse.ValueOf(decimal.NewFromInt(1000)),
		},
	}
	updated, err := m.Edit(ctx, report, edit, submitter)
	require.NoError(t, err)

	// TF = 2 * 1e6 / 1000 = 2000, TG = 3 * 1e3 / 1000 = 3
	assert.True(t, updated.TFValue.Equal(decimal.NewFromInt(2000)), "TF = %s", updated.TFValue)
	assert.True(t, updated.TGValue.Equal(decimal.NewFromInt(3)), "TG = %s", updated.TGValue)
}

func TestLifecycle_EditNonRateFieldKeepsRates(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)
	tfBefore := report.TFValue

	edit := hse.ReportEdit{
		Values: map[hse.Field]hse.Value{hse.FieldInspections: hse.ValueOfInt(9)},
	}
	updated, err := m.Edit(ctx, report, edit, submitter)
	require.NoError(t, err)

	assert.Equal(t, 9, updated.Inspections)
	assert.True(t, updated.TFValue.Equal(tfBefore))
}

func TestLifecycle_EditRequiresSubmitterRole(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	notes := "an approver rewriting the numbers"
	_, err := m.Edit(ctx, report, hse.ReportEdit{Notes: &notes}, approver)
	assert.True(t, hse.IsForbidden(err))

	// Admins retain submitter-side powers
	admin := hse.Actor{ID: "root", Role: hse.RoleAdmin}
	updated, err := m.Edit(ctx, report, hse.ReportEdit{Notes: &notes}, admin)
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
}

func TestLifecycle_EditForbiddenOnceSubmitted(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	report, err := m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)

	notes := "late correction"
	_, err = m.Edit(ctx, report, hse.ReportEdit{Notes: &notes}, submitter)
	assert.True(t, hse.IsForbidden(err))
}

func TestLifecycle_EditAllowedWhileRejected(t *testing.T) {
	m, mem := newLifecycle(t)
	ctx := context.Background()
	report := createDraft(t, m, mem)

	report, err := m.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	require.NoError(t, err)
	report, err = m.Transition(ctx, report, hse.ActionReject, approver, hse.TransitionPayload{Reason: "wrong totals"})
	require.NoError(t, err)

	notes := "totals corrected"
	updated, err := m.Edit(ctx, report, hse.ReportEdit{Notes: &notes}, submitter)
	require.NoError(t, err)
	assert.Equal(t, "totals corrected", updated.Notes)
	assert.Equal(t, hse.ReportRejected, updated.Status)
}

func TestLegalActions(t *testing.T) {
	assert.ElementsMatch(t, []hse.Action{hse.ActionSubmit, hse.ActionDelete}, hse.LegalActions(hse.ReportDraft))
	assert.ElementsMatch(t, []hse.Action{hse.ActionApprove, hse.ActionReject}, hse.LegalActions(hse.ReportSubmitted))
	assert.ElementsMatch(t, []hse.Action{hse.ActionSubmit}, hse.LegalActions(hse.ReportRejected))
	assert.Empty(t, hse.LegalActions(hse.ReportApproved))
}
