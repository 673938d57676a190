/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates projects, daily
	entries, source records, and reports that demonstrate specific features.

AVAILABLE SCENARIOS:

	single-project-week: One project, a full week of daily entries with a
	                     generated draft showing rollup and auto-population
	rejection-cycle:     A report going through submit, reject, edit and
	                     resubmit, ending approved
	multi-pole-month:    Projects across two poles with a month of approved
	                     reports feeding the monthly dashboard

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create projects
 3. Record daily entries and source sessions
 4. Build drafts and walk them through the lifecycle

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "rejection-cycle"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler wiring
  - hse/lifecycle.go: Report state machine the scenarios exercise
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "single-project-week",
		Name:        "Single Project Week",
		Description: "One project with a full week of daily entries, trainings and permits, plus the generated draft",
	},
	{
		ID:          "rejection-cycle",
		Name:        "Rejection & Resubmission",
		Description: "A weekly report submitted, rejected for a missing signature, corrected and approved",
	},
	{
		ID:          "multi-pole-month",
		Name:        "Multi-Pole Month",
		Description: "Four projects across two poles with approved reports feeding the monthly dashboard",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "single-project-week":
		err = h.loadSingleProjectWeek(ctx)
	case "rejection-cycle":
		err = h.loadRejectionCycle(ctx)
	case "multi-pole-month":
		err = h.loadMultiPoleMonth(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadSingleProjectWeek: one project, six working days of entries in the
// week starting Saturday 2026-06-06, two trainings, three permits, and the
// generated draft left in draft status.
func (h *Handler) loadSingleProjectWeek(ctx context.Context) error {
	project := hse.Project{ID: "site-alpha", Name: "Alpha Substation", Pole: "Construction"}
	if err := h.Store.SaveProject(ctx, project); err != nil {
		return err
	}

	weekStart := hse.NewDate(2026, 6, 6)
	workforce := []int{42, 45, 45, 44, 43, 40}
	for i, wf := range workforce {
		day := weekStart.AddDays(i)
		entry := hse.DailyEntry{
			ID:             hse.EntryID(fmt.Sprintf("seed-alpha-%s", day)),
			ProjectID:      project.ID,
			EntryDate:      day,
			SubmittedBy:    "site-hse-officer",
			Status:         hse.EntrySubmitted,
			Workforce:      wf,
			Inductions:     2,
			Findings:       3,
			FindingsClosed: 2,
			NearMisses:     1,
			HoursWorked:    decimal.NewFromInt(int64(wf * 9)),
			Inspections:    1,
		}
		if i == 3 {
			entry.Accidents = 1
			entry.LostWorkdays = 4
			entry.FirstAidCases = 1
		}
		comp := decimal.NewFromInt(int64(90 + i))
		entry.HSECompliance = &comp
		if err := h.Store.SaveEntry(ctx, entry); err != nil {
			return err
		}
	}

	period := h.Weeks.Resolve(weekStart)
	trainings := []hse.Training{
		{ID: "seed-tr-1", ProjectID: project.ID, Period: period, Topic: "Work at height", Hours: decimal.NewFromInt(3), Attendees: 18, HeldAt: weekStart.AddDays(1)},
		{ID: "seed-tr-2", ProjectID: project.ID, Period: period, Topic: "Confined spaces", Hours: decimal.NewFromFloat(2.5), Attendees: 12, HeldAt: weekStart.AddDays(3)},
	}
	for _, t := range trainings {
		if err := h.Store.AddTraining(ctx, t); err != nil {
			return err
		}
	}
	if err := h.Store.AddAwarenessSession(ctx, hse.AwarenessSession{
		ID: "seed-aw-1", ProjectID: project.ID, Period: period,
		Topic: "Heat stress", Hours: decimal.NewFromInt(1), Attendees: 40, HeldAt: weekStart.AddDays(2),
	}); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := h.Store.AddWorkPermit(ctx, hse.WorkPermit{
			ID: fmt.Sprintf("seed-wp-%d", i+1), ProjectID: project.ID, Period: period,
			Kind: "hot-work", IssuedAt: weekStart.AddDays(i),
		}); err != nil {
			return err
		}
	}

	submitter := hse.Actor{ID: "site-hse-officer", Role: hse.RoleSubmitter}
	_, err := h.Lifecycle.CreateDraft(ctx, project.ID, period, submitter)
	return err
}

// loadRejectionCycle: a full approval round-trip ending approved, with
// the rejection history preserved on the report.
func (h *Handler) loadRejectionCycle(ctx context.Context) error {
	project := hse.Project{ID: "site-bravo", Name: "Bravo Pipeline", Pole: "Industry"}
	if err := h.Store.SaveProject(ctx, project); err != nil {
		return err
	}

	weekStart := hse.NewDate(2026, 6, 6)
	for i := 0; i < 5; i++ {
		day := weekStart.AddDays(i)
		if err := h.Store.SaveEntry(ctx, hse.DailyEntry{
			ID:             hse.EntryID(fmt.Sprintf("seed-bravo-%s", day)),
			ProjectID:      project.ID,
			EntryDate:      day,
			SubmittedBy:    "bravo-hse",
			Status:         hse.EntrySubmitted,
			Workforce:      30,
			Findings:       2,
			FindingsClosed: 1,
			HoursWorked:    decimal.NewFromInt(270),
		}); err != nil {
			return err
		}
	}

	period := h.Weeks.Resolve(weekStart)
	submitter := hse.Actor{ID: "bravo-hse", Role: hse.RoleSubmitter}
	approver := hse.Actor{ID: "pole-manager", Role: hse.RoleApprover}

	report, err := h.Lifecycle.CreateDraft(ctx, project.ID, period, submitter)
	if err != nil {
		return err
	}

	report, err = h.Lifecycle.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	if err != nil {
		return err
	}
	report, err = h.Lifecycle.Transition(ctx, report, hse.ActionReject, approver, hse.TransitionPayload{
		Reason: "Missing site manager signature on the inspection log",
	})
	if err != nil {
		return err
	}

	notes := "Inspection log countersigned and attached"
	report, err = h.Lifecycle.Edit(ctx, report, hse.ReportEdit{Notes: &notes}, submitter)
	if err != nil {
		return err
	}
	report, err = h.Lifecycle.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
	if err != nil {
		return err
	}
	_, err = h.Lifecycle.Transition(ctx, report, hse.ActionApprove, approver, hse.TransitionPayload{})
	return err
}

// loadMultiPoleMonth: four projects across two poles, four approved weekly
// reports each over June 2026, so the monthly dashboard has data per pole.
func (h *Handler) loadMultiPoleMonth(ctx context.Context) error {
	projects := []hse.Project{
		{ID: "site-alpha", Name: "Alpha Substation", Pole: "Construction"},
		{ID: "site-delta", Name: "Delta Towers", Pole: "Construction"},
		{ID: "site-bravo", Name: "Bravo Pipeline", Pole: "Industry"},
		{ID: "site-echo", Name: "Echo Refinery", Pole: "Industry"},
	}
	for _, p := range projects {
		if err := h.Store.SaveProject(ctx, p); err != nil {
			return err
		}
	}

	submitter := hse.Actor{ID: "seed-submitter", Role: hse.RoleSubmitter}
	approver := hse.Actor{ID: "seed-approver", Role: hse.RoleApprover}

	// Four Saturday-start weeks fully inside June 2026.
	weekStarts := []hse.Date{
		hse.NewDate(2026, 6, 6),
		hse.NewDate(2026, 6, 13),
		hse.NewDate(2026, 6, 20),
		hse.NewDate(2026, 6, 27),
	}

	for pi, p := range projects {
		for wi, start := range weekStarts {
			for d := 0; d < 6; d++ {
				day := start.AddDays(d)
				entry := hse.DailyEntry{
					ID:             hse.EntryID(fmt.Sprintf("seed-%s-%s", p.ID, day)),
					ProjectID:      p.ID,
					EntryDate:      day,
					SubmittedBy:    "seed-submitter",
					Status:         hse.EntrySubmitted,
					Workforce:      25 + pi*10 + wi,
					Findings:       2,
					FindingsClosed: 2 - wi%2,
					HoursWorked:    decimal.NewFromInt(int64((25 + pi*10) * 9)),
				}
				if pi == 2 && wi == 1 && d == 2 {
					entry.Accidents = 1
					entry.LostWorkdays = 6
				}
				if err := h.Store.SaveEntry(ctx, entry); err != nil {
					return err
				}
			}

			period := h.Weeks.Resolve(start)
			report, err := h.Lifecycle.CreateDraft(ctx, p.ID, period, submitter)
			if err != nil {
				return err
			}
			report, err = h.Lifecycle.Transition(ctx, report, hse.ActionSubmit, submitter, hse.TransitionPayload{})
			if err != nil {
				return err
			}
			if _, err := h.Lifecycle.Transition(ctx, report, hse.ActionApprove, approver, hse.TransitionPayload{}); err != nil {
				return err
			}
		}
	}
	return nil
}
