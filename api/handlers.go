/*
handlers.go - HTTP API handlers for the HSE reporting engine

PURPOSE:
  Exposes the KPI aggregation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Periods:
    GET    /api/period/resolve          Resolve a date to its weekly period

  Projects:
    GET    /api/projects                List all projects
    POST   /api/projects                Register a project
    GET    /api/projects/{id}           Get project details

  Daily entries:
    POST   /api/projects/{id}/entries   Record a daily entry
    GET    /api/projects/{id}/entries   List entries for a week

  Source collections:
    POST   /api/projects/{id}/trainings  Record a training session
    POST   /api/projects/{id}/awareness  Record an awareness session
    POST   /api/projects/{id}/permits    Record a work permit

  Reports:
    POST   /api/projects/{id}/reports   Create a weekly draft
    GET    /api/projects/{id}/reports   List a project's reports
    GET    /api/reports/{id}            Get a report
    PATCH  /api/reports/{id}            Edit a draft/rejected report
    POST   /api/reports/{id}/submit     Submit for approval
    POST   /api/reports/{id}/approve    Approve
    POST   /api/reports/{id}/reject     Reject with reason
    DELETE /api/reports/{id}            Soft-delete a draft

  Aggregates:
    GET    /api/aggregates/monthly      Monthly per-pole dashboard rows

  Reduction rules:
    GET    /api/rules                   Active reduction-rule table
    PUT    /api/rules                   Override reduction strategies

  Scenarios:
    GET    /api/scenarios               List demo scenarios
    POST   /api/scenarios/load          Load a demo scenario
    POST   /api/scenarios/reset         Reset the database

ERROR HANDLING:
  Domain errors map to HTTP status via respondError:
  - 400: Validation errors, invalid input
  - 403: Forbidden lifecycle transitions
  - 404: Report/project/entry not found
  - 409: Duplicate period report or duplicate daily entry
  - 500: Internal errors

SECURITY NOTE:
  Actor identity is taken from the request body, not from auth. All
  endpoints are public. Production deployments put an authenticating
  gateway in front and derive the actor from the session.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/hse-engine/factory"
	"github.com/warp/hse-engine/hse"
	"github.com/warp/hse-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       *sqlite.Store
	Weeks       hse.WeekConfig
	Drafts      *hse.DraftBuilder
	Lifecycle   *hse.LifecycleManager
	Monthly     *hse.MonthlyAggregator
	RuleFactory *factory.RuleFactory

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler wires the engine components around the given store.
func NewHandler(store *sqlite.Store) *Handler {
	weeks := hse.DefaultWeekConfig()
	drafts := &hse.DraftBuilder{
		Entries:   store,
		Trainings: store,
		Awareness: store,
		Permits:   store,
		Rules:     hse.DefaultFieldRules(),
	}
	return &Handler{
		Store:  store,
		Weeks:  weeks,
		Drafts: drafts,
		Lifecycle: &hse.LifecycleManager{
			Reports: store,
			Drafts:  drafts,
		},
		Monthly: &hse.MonthlyAggregator{
			Reports:   store,
			Directory: store,
			Rules:     hse.MonthlyFieldRules(),
		},
		RuleFactory: factory.NewRuleFactory(),
	}
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// ResolvePeriod maps a calendar date onto its weekly reporting window.
func (h *Handler) ResolvePeriod(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = hse.Today().String()
	}

	d, err := hse.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	writeJSON(w, http.StatusOK, toPeriodDTO(h.Weeks.Resolve(d)))
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

// ListProjects returns all registered projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.Projects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ProjectDTO{ID: string(p.ID), Name: p.Name, Pole: string(p.Pole)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProject returns a single project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := hse.ProjectID(chi.URLParam(r, "id"))

	p, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectDTO{ID: string(p.ID), Name: p.Name, Pole: string(p.Pole)})
}

// CreateProject registers a new project under a pole.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Pole == "" {
		writeError(w, http.StatusBadRequest, "id and pole are required", nil)
		return
	}

	p := hse.Project{ID: hse.ProjectID(req.ID), Name: req.Name, Pole: hse.Pole(req.Pole)}
	if err := h.Store.SaveProject(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, ProjectDTO{ID: req.ID, Name: req.Name, Pole: req.Pole})
}

// =============================================================================
// DAILY ENTRY HANDLERS
// =============================================================================

// CreateEntry records one day of HSE figures for a project.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	projectID := hse.ProjectID(chi.URLParam(r, "id"))

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entryDate, err := hse.ParseDate(req.EntryDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry_date format (use YYYY-MM-DD)", err)
		return
	}

	hours, err := parseDecimal(req.HoursWorked)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hours_worked", err)
		return
	}
	water, err := parseDecimal(req.WaterConsumption)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid water_consumption", err)
		return
	}
	electricity, err := parseDecimal(req.ElectricityConsumption)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid electricity_consumption", err)
		return
	}

	hseComp, err := parseDecimalPtr(req.HSECompliance)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hse_compliance", err)
		return
	}
	medComp, err := parseDecimalPtr(req.MedicalCompliance)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid medical_compliance", err)
		return
	}
	noise, err := parseDecimalPtr(req.NoiseLevel)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid noise_level", err)
		return
	}

	entry := hse.DailyEntry{
		ID:          hse.EntryID(fmt.Sprintf("entry-%d", time.Now().UnixNano())),
		ProjectID:   projectID,
		EntryDate:   entryDate,
		SubmittedBy: req.SubmittedBy,
		Status:      hse.EntrySubmitted,

		Workforce:           req.Workforce,
		Inductions:          req.Inductions,
		Findings:            req.Findings,
		FindingsClosed:      req.FindingsClosed,
		NearMisses:          req.NearMisses,
		FirstAidCases:       req.FirstAidCases,
		Accidents:           req.Accidents,
		LostWorkdays:        req.LostWorkdays,
		HoursWorked:         hours,
		Inspections:         req.Inspections,
		DisciplinaryActions: req.DisciplinaryActions,

		WaterConsumption:       water,
		ElectricityConsumption: electricity,

		HSECompliance:     hseComp,
		MedicalCompliance: medComp,
		NoiseLevel:        noise,

		CreatedAt: time.Now().UTC(),
	}

	if err := h.Store.SaveEntry(r.Context(), entry); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

// ListEntries returns a project's entries for one weekly period. The
// period comes from ?date= (resolved) or ?period_number=&period_year=.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	projectID := hse.ProjectID(chi.URLParam(r, "id"))

	period, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period selection", err)
		return
	}

	entries, err := h.Store.EntriesForPeriod(r.Context(), projectID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// =============================================================================
// SOURCE COLLECTION HANDLERS
// =============================================================================

// CreateTraining records a training session for cross-source population.
func (h *Handler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	h.createSession(w, r, func(projectID hse.ProjectID, period hse.PeriodRef, req TrainingRequest, hours decimal.Decimal, heldAt hse.Date, id string) error {
		return h.Store.AddTraining(r.Context(), hse.Training{
			ID:        id,
			ProjectID: projectID,
			Period:    period,
			Topic:     req.Topic,
			Hours:     hours,
			Attendees: req.Attendees,
			HeldAt:    heldAt,
		})
	})
}

// CreateAwareness records an awareness/toolbox session.
func (h *Handler) CreateAwareness(w http.ResponseWriter, r *http.Request) {
	h.createSession(w, r, func(projectID hse.ProjectID, period hse.PeriodRef, req TrainingRequest, hours decimal.Decimal, heldAt hse.Date, id string) error {
		return h.Store.AddAwarenessSession(r.Context(), hse.AwarenessSession{
			ID:        id,
			ProjectID: projectID,
			Period:    period,
			Topic:     req.Topic,
			Hours:     hours,
			Attendees: req.Attendees,
			HeldAt:    heldAt,
		})
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request,
	save func(hse.ProjectID, hse.PeriodRef, TrainingRequest, decimal.Decimal, hse.Date, string) error) {

	projectID := hse.ProjectID(chi.URLParam(r, "id"))

	var req TrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	heldAt, err := hse.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	hours, err := parseDecimal(req.Hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hours", err)
		return
	}

	id := fmt.Sprintf("src-%d", time.Now().UnixNano())
	period := h.Weeks.Resolve(heldAt)

	if err := save(projectID, period, req, hours, heldAt, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "period": period.Key()})
}

// CreatePermit records an issued work permit.
func (h *Handler) CreatePermit(w http.ResponseWriter, r *http.Request) {
	projectID := hse.ProjectID(chi.URLParam(r, "id"))

	var req PermitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	issuedAt, err := hse.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	id := fmt.Sprintf("permit-%d", time.Now().UnixNano())
	if err := h.Store.AddWorkPermit(r.Context(), hse.WorkPermit{
		ID:        id,
		ProjectID: projectID,
		Period:    h.Weeks.Resolve(issuedAt),
		Kind:      req.Kind,
		IssuedAt:  issuedAt,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save work permit", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// CreateReport builds and persists a weekly draft for a project, rolling
// up the week's daily entries and pulling training/awareness/permit totals.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	projectID := hse.ProjectID(chi.URLParam(r, "id"))

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var period hse.PeriodRef
	switch {
	case req.Date != "":
		d, err := hse.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		period = h.Weeks.Resolve(d)
	case req.PeriodNumber != 0:
		p, err := h.Weeks.PeriodOf(req.PeriodNumber, req.PeriodYear)
		if err != nil {
			respondError(w, err)
			return
		}
		period = p
	default:
		writeError(w, http.StatusBadRequest, "Either date or period_number/period_year is required", nil)
		return
	}

	submitter := hse.Actor{ID: req.SubmittedBy, Role: hse.RoleSubmitter}
	report, err := h.Lifecycle.CreateDraft(r.Context(), projectID, period, submitter)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReportDTO(*report))
}

// ListReports returns a project's reports, newest period first.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	projectID := hse.ProjectID(chi.URLParam(r, "id"))

	reports, err := h.Store.ReportsForProject(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTOs(reports))
}

// GetReport returns a single report with its legal next actions.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := hse.ReportID(chi.URLParam(r, "id"))

	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(*report))
}

// EditReport patches a draft or rejected report and recomputes TF/TG when
// any rate input changed.
func (h *Handler) EditReport(w http.ResponseWriter, r *http.Request) {
	id := hse.ReportID(chi.URLParam(r, "id"))

	var req EditReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	edit := hse.ReportEdit{Notes: req.Notes}
	if len(req.Values) > 0 {
		edit.Values = make(map[hse.Field]hse.Value, len(req.Values))
		for field, raw := range req.Values {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid value for %s", field), err)
				return
			}
			edit.Values[hse.Field(field)] = hse.ValueOf(d)
		}
	}

	updated, err := h.Lifecycle.Edit(r.Context(), report, edit, toActor(req.Actor))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(*updated))
}

// SubmitReport moves a draft or rejected report to submitted.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, hse.ActionSubmit, hse.TransitionPayload{})
}

// ApproveReport finalizes a submitted report.
func (h *Handler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, hse.ActionApprove, hse.TransitionPayload{})
}

// RejectReport sends a submitted report back with a mandatory reason.
func (h *Handler) RejectReport(w http.ResponseWriter, r *http.Request) {
	id := hse.ReportID(chi.URLParam(r, "id"))

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Lifecycle.Transition(r.Context(), report, hse.ActionReject, toActor(req.Actor), hse.TransitionPayload{Reason: req.Reason})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(*updated))
}

// DeleteReport soft-deletes a draft, freeing its period slot.
func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id := hse.ReportID(chi.URLParam(r, "id"))

	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := hse.Actor{ID: r.URL.Query().Get("actor_id"), Role: hse.Role(r.URL.Query().Get("actor_role"))}
	if actor.Role == "" {
		actor.Role = hse.RoleSubmitter
	}

	if _, err := h.Lifecycle.Transition(r.Context(), report, hse.ActionDelete, actor, hse.TransitionPayload{}); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action hse.Action, payload hse.TransitionPayload) {
	id := hse.ReportID(chi.URLParam(r, "id"))

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.Store.GetReport(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Lifecycle.Transition(r.Context(), report, action, toActor(req.Actor), payload)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(*updated))
}

// =============================================================================
// AGGREGATE HANDLERS
// =============================================================================

// MonthlyAggregates returns the per-pole dashboard rows for one month.
func (h *Handler) MonthlyAggregates(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month (1-12)", err)
		return
	}

	filter := hse.MonthlyFilter{}
	if pid := r.URL.Query().Get("project_id"); pid != "" {
		filter.ProjectID = hse.ProjectID(pid)
	}

	rows, err := h.Monthly.Aggregate(r.Context(), year, time.Month(month), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate", err)
		return
	}

	dtos := make([]MonthlyRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toMonthlyRowDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RULE CONFIGURATION HANDLERS
// =============================================================================

// GetRules returns the reduction-rule table currently driving the monthly
// rollup (a superset of the weekly table).
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	doc := factory.RulesJSON{}
	for _, rule := range h.Monthly.Rules {
		doc.Fields = append(doc.Fields, factory.FieldRuleJSON{
			Field:    string(rule.Field),
			Strategy: string(rule.Strategy),
		})
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateRules replaces the active reduction strategies from a JSON rule
// document. Omitted fields fall back to the shipped defaults. Applies to
// drafts and monthly aggregates built after the call; existing report
// snapshots are untouched.
func (h *Handler) UpdateRules(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	weekly, err := h.RuleFactory.ParseRules(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rule document", err)
		return
	}
	monthly, err := h.RuleFactory.ParseMonthlyRules(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rule document", err)
		return
	}

	h.Drafts.Rules = weekly
	h.Monthly.Rules = monthly
	h.GetRules(w, r)
}

// =============================================================================
// HELPERS
// =============================================================================

// periodFromQuery resolves a weekly window from either ?date= or
// ?period_number=&period_year=. Defaults to the current week.
func (h *Handler) periodFromQuery(r *http.Request) (hse.PeriodRef, error) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		d, err := hse.ParseDate(dateStr)
		if err != nil {
			return hse.PeriodRef{}, err
		}
		return h.Weeks.Resolve(d), nil
	}
	if numStr := r.URL.Query().Get("period_number"); numStr != "" {
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return hse.PeriodRef{}, err
		}
		year, err := strconv.Atoi(r.URL.Query().Get("period_year"))
		if err != nil {
			return hse.PeriodRef{}, err
		}
		return h.Weeks.PeriodOf(num, year)
	}
	return h.Weeks.Resolve(hse.Today()), nil
}

func toActor(a ActorDTO) hse.Actor {
	role := hse.Role(a.Role)
	if role == "" {
		role = hse.RoleSubmitter
	}
	return hse.Actor{ID: a.ID, Role: role}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// respondError maps domain errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hse.ErrDuplicatePeriod):
		writeError(w, http.StatusConflict, "A report already exists for this period", err)
	case errors.Is(err, hse.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, "An entry already exists for this date", err)
	case hse.IsForbidden(err):
		writeError(w, http.StatusForbidden, "Operation not allowed in current status", err)
	case hse.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case hse.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
