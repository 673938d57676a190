/*
draft.go - Cross-source auto-population of report drafts

PURPOSE:
  Builds a fully pre-filled report draft for one (project, period) by
  merging the daily rollup with counts pulled from three independent
  source collections: trainings, awareness sessions, and work permits.

NO DOUBLE COUNTING:
  Each source contributes to exactly one field category:
    training_hours = sum(Training.hours) + sum(AwarenessSession.hours)
    work_permits   = count(WorkPermit rows)
  The three queries are independent; a record is never counted twice.

SNAPSHOT-THEN-DECOUPLE:
  The overlay is a one-time value copy. Once the draft is created, edited
  fields never re-sync from their sources - there is no live binding back
  to source rows.

PERSISTENCE:
  BuildDraft persists nothing. Saving the draft (and enforcing the period
  uniqueness invariant) is the lifecycle manager's job.

SEE ALSO:
  - rollup.go: Produces the daily aggregate this builder starts from
  - lifecycle.go: Persists the draft via CreateDraft
*/
package hse

import (
	"context"
	"fmt"
)

// DraftBuilder assembles unsaved report drafts from the entry store and
// the three source collections.
type DraftBuilder struct {
	Entries   DailyEntryStore
	Trainings TrainingStore
	Awareness AwarenessStore
	Permits   WorkPermitStore

	// Rules defaults to DefaultFieldRules when nil.
	Rules []FieldRule
}

// BuildDraft returns a fully-formed, unsaved draft payload for the
// project and period. Zero source rows yield zero/null fields, not an
// error.
func (b *DraftBuilder) BuildDraft(ctx context.Context, projectID ProjectID, period PeriodRef) (*PeriodReport, error) {
	if projectID == "" {
		return nil, &ValidationError{Field: "project_id", Reason: "required"}
	}
	if !period.Resolved() {
		return nil, ErrInvalidPeriod
	}

	entries, err := b.Entries.EntriesForPeriod(ctx, projectID, period)
	if err != nil {
		return nil, fmt.Errorf("loading daily entries: %w", err)
	}

	rules := b.Rules
	if rules == nil {
		rules = DefaultFieldRules()
	}
	agg := Rollup(entries, rules)

	report := &PeriodReport{
		ProjectID: projectID,
		Period:    period,
		Status:    ReportDraft,
	}
	for field, value := range agg {
		report.SetValue(field, value)
	}

	// Overlay the three independent source collections.
	training, err := b.Trainings.TrainingTotals(ctx, projectID, period)
	if err != nil {
		return nil, fmt.Errorf("summing trainings: %w", err)
	}
	awareness, err := b.Awareness.AwarenessTotals(ctx, projectID, period)
	if err != nil {
		return nil, fmt.Errorf("summing awareness sessions: %w", err)
	}
	permits, err := b.Permits.PermitTotals(ctx, projectID, period)
	if err != nil {
		return nil, fmt.Errorf("counting work permits: %w", err)
	}

	report.TrainingHours = training.Hours.Add(awareness.Hours)
	report.WorkPermits = permits.Count

	rates := ComputeRates(report.Accidents, report.LostWorkdays, report.HoursWorked)
	report.TFValue = rates.TF
	report.TGValue = rates.TG

	return report, nil
}
