/*
scenarios_test.go - Tests for the demo scenario loaders

PURPOSE:
	Tests that each scenario sets up the expected state:
	- Projects and daily entries are created
	- Source sessions feed the generated drafts
	- Reports end in the right lifecycle status
	- The monthly dashboard sees the seeded month

These double as integration tests for the full stack over SQLite.
*/
package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/warp/hse-engine/hse"
)

func loadScenario(t *testing.T, ts *testServer, id string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: id})
	requireStatus(t, rec, http.StatusOK)
}

func TestListScenarios(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/scenarios", nil)
	requireStatus(t, rec, http.StatusOK)

	list := decodeJSON[[]ScenarioDTO](t, rec)
	if len(list) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(list))
	}
	ids := map[string]bool{}
	for _, s := range list {
		ids[s.ID] = true
	}
	for _, want := range []string{"single-project-week", "rejection-cycle", "multi-pole-month"} {
		if !ids[want] {
			t.Errorf("scenario %q missing from list", want)
		}
	}
}

func TestLoadScenario_Unknown(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "nope"})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestScenario_SingleProjectWeek(t *testing.T) {
	// GIVEN: The single-project-week scenario
	ts := newTestServer(t)
	loadScenario(t, ts, "single-project-week")

	// THEN: The current scenario is reported
	rec := ts.do(t, http.MethodGet, "/api/scenarios/current", nil)
	requireStatus(t, rec, http.StatusOK)
	if cur := decodeJSON[ScenarioDTO](t, rec); cur.ID != "single-project-week" {
		t.Errorf("expected current scenario single-project-week, got %q", cur.ID)
	}

	// AND: The project has a full week of entries
	rec = ts.do(t, http.MethodGet, "/api/projects/site-alpha/entries?date=2026-06-06", nil)
	requireStatus(t, rec, http.StatusOK)
	entries := decodeJSON[[]EntryDTO](t, rec)
	if len(entries) != 6 {
		t.Fatalf("expected 6 daily entries, got %d", len(entries))
	}

	// AND: The generated draft carries the rollup and the source totals
	rec = ts.do(t, http.MethodGet, "/api/projects/site-alpha/reports", nil)
	requireStatus(t, rec, http.StatusOK)
	reports := decodeJSON[[]ReportDTO](t, rec)
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	draft := reports[0]
	if draft.Status != "draft" {
		t.Errorf("expected a draft, got %s", draft.Status)
	}
	if draft.Workforce != 45 {
		t.Errorf("expected peak workforce 45, got %d", draft.Workforce)
	}
	if draft.Accidents != 1 || draft.LostWorkdays != 4 {
		t.Errorf("expected 1 accident / 4 lost workdays, got %d / %d", draft.Accidents, draft.LostWorkdays)
	}
	// 3 + 2.5 training hours + 1 awareness hour
	if draft.TrainingHours != "6.5" {
		t.Errorf("expected training hours 6.5, got %s", draft.TrainingHours)
	}
	if draft.WorkPermits != 3 {
		t.Errorf("expected 3 work permits, got %d", draft.WorkPermits)
	}
	if draft.TF == "0" {
		t.Error("expected a non-zero frequency rate")
	}
}

func TestScenario_RejectionCycle(t *testing.T) {
	// GIVEN: The rejection-cycle scenario
	ts := newTestServer(t)
	loadScenario(t, ts, "rejection-cycle")

	// THEN: The report ends approved with the rejection history preserved
	rec := ts.do(t, http.MethodGet, "/api/projects/site-bravo/reports", nil)
	requireStatus(t, rec, http.StatusOK)
	reports := decodeJSON[[]ReportDTO](t, rec)
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	report := reports[0]
	if report.Status != "approved" {
		t.Errorf("expected approved, got %s", report.Status)
	}
	if report.SubmissionCount != 2 {
		t.Errorf("expected 2 submissions, got %d", report.SubmissionCount)
	}
	if report.RejectionReason == "" || report.RejectedBy != "pole-manager" {
		t.Errorf("rejection history missing: %+v", report)
	}
	if report.ApprovedBy != "pole-manager" {
		t.Errorf("expected approver pole-manager, got %q", report.ApprovedBy)
	}
	if report.Notes == "" {
		t.Error("expected the corrective note from the edit")
	}
}

func TestScenario_MultiPoleMonth(t *testing.T) {
	// GIVEN: The multi-pole-month scenario
	ts := newTestServer(t)
	loadScenario(t, ts, "multi-pole-month")

	// THEN: Four projects exist across two poles
	rec := ts.do(t, http.MethodGet, "/api/projects", nil)
	requireStatus(t, rec, http.StatusOK)
	projects := decodeJSON[[]ProjectDTO](t, rec)
	if len(projects) != 4 {
		t.Fatalf("expected 4 projects, got %d", len(projects))
	}

	// AND: The June dashboard has both pole rows populated
	rec = ts.do(t, http.MethodGet, "/api/aggregates/monthly?year=2026&month=6", nil)
	requireStatus(t, rec, http.StatusOK)
	rows := decodeJSON[[]MonthlyRowDTO](t, rec)
	if len(rows) != 2 {
		t.Fatalf("expected 2 pole rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ProjectCount != 2 {
			t.Errorf("pole %s: expected 2 projects, got %d", row.Pole, row.ProjectCount)
		}
		// 2 projects x 4 approved weeks each
		if row.ReportCount != 8 {
			t.Errorf("pole %s: expected 8 reports, got %d", row.Pole, row.ReportCount)
		}
	}

	// AND: The seeded accident lands on the Industry pole
	var industry MonthlyRowDTO
	for _, row := range rows {
		if row.Pole == "Industry" {
			industry = row
		}
	}
	if v := industry.Values["accidents"]; v == nil || *v != "1" {
		t.Errorf("expected 1 accident on Industry, got %v", v)
	}
}

func TestResetDatabase(t *testing.T) {
	// GIVEN: A loaded scenario
	ts := newTestServer(t)
	loadScenario(t, ts, "single-project-week")

	// WHEN: Resetting
	rec := ts.do(t, http.MethodPost, "/api/scenarios/reset", nil)
	requireStatus(t, rec, http.StatusOK)

	// THEN: All data is gone and no scenario is current
	projects, err := ts.handler.Store.Projects(context.Background())
	if err != nil {
		t.Fatalf("Failed to list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected no projects after reset, got %d", len(projects))
	}
	if ts.handler.currentScenario != "" {
		t.Errorf("expected no current scenario, got %q", ts.handler.currentScenario)
	}

	// AND: A fresh scenario can be loaded again
	loadScenario(t, ts, "rejection-cycle")

	reports, err := ts.handler.Store.ReportsForProject(context.Background(), hse.ProjectID("site-bravo"))
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("expected 1 report after reload, got %d", len(reports))
	}
}
