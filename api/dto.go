/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Projects:
    ProjectDTO, CreateProjectRequest

  Daily entries:
    EntryDTO, CreateEntryRequest

  Reports:
    ReportDTO, CreateReportRequest, EditReportRequest, RejectRequest

  Sources:
    TrainingRequest, AwarenessRequest, PermitRequest

  Aggregates:
    PeriodDTO, MonthlyRowDTO

VALIDATION:
  Validation is done in handlers and domain logic, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - hse/types.go: Domain model these map from
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// PROJECT TYPES
// =============================================================================

// ProjectDTO represents a project in API responses.
type ProjectDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Pole string `json:"pole"`
}

// CreateProjectRequest is the request to register a project.
type CreateProjectRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Pole string `json:"pole"`
}

// =============================================================================
// DAILY ENTRY TYPES
// =============================================================================

// CreateEntryRequest is the request body for a daily HSE entry.
// Counters default to zero when omitted; the three sampled KPIs
// (hse_compliance, medical_compliance, noise_level) stay null when omitted
// so "no measurement" is distinguishable from "measured zero".
type CreateEntryRequest struct {
	EntryDate   string `json:"entry_date"` // YYYY-MM-DD
	SubmittedBy string `json:"submitted_by"`

	Workforce           int    `json:"workforce"`
	Inductions          int    `json:"inductions"`
	Findings            int    `json:"findings"`
	FindingsClosed      int    `json:"findings_closed"`
	NearMisses          int    `json:"near_misses"`
	FirstAidCases       int    `json:"first_aid_cases"`
	Accidents           int    `json:"accidents"`
	LostWorkdays        int    `json:"lost_workdays"`
	HoursWorked         string `json:"hours_worked"`
	Inspections         int    `json:"inspections"`
	DisciplinaryActions int    `json:"disciplinary_actions"`

	WaterConsumption       string `json:"water_consumption"`
	ElectricityConsumption string `json:"electricity_consumption"`

	HSECompliance     *string `json:"hse_compliance,omitempty"`
	MedicalCompliance *string `json:"medical_compliance,omitempty"`
	NoiseLevel        *string `json:"noise_level,omitempty"`
}

// EntryDTO represents a daily entry in API responses.
type EntryDTO struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	EntryDate   string `json:"entry_date"`
	SubmittedBy string `json:"submitted_by"`
	Status      string `json:"status"`

	Workforce           int    `json:"workforce"`
	Inductions          int    `json:"inductions"`
	Findings            int    `json:"findings"`
	FindingsClosed      int    `json:"findings_closed"`
	NearMisses          int    `json:"near_misses"`
	FirstAidCases       int    `json:"first_aid_cases"`
	Accidents           int    `json:"accidents"`
	LostWorkdays        int    `json:"lost_workdays"`
	HoursWorked         string `json:"hours_worked"`
	Inspections         int    `json:"inspections"`
	DisciplinaryActions int    `json:"disciplinary_actions"`

	WaterConsumption       string `json:"water_consumption"`
	ElectricityConsumption string `json:"electricity_consumption"`

	HSECompliance     *string `json:"hse_compliance,omitempty"`
	MedicalCompliance *string `json:"medical_compliance,omitempty"`
	NoiseLevel        *string `json:"noise_level,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// CreateReportRequest asks the engine to build and persist a weekly draft.
// Either a date (resolved to its week) or an explicit period may be given.
type CreateReportRequest struct {
	Date         string `json:"date,omitempty"` // YYYY-MM-DD, resolved to a week
	PeriodNumber int    `json:"period_number,omitempty"`
	PeriodYear   int    `json:"period_year,omitempty"`
	SubmittedBy  string `json:"submitted_by"`
}

// EditReportRequest patches a draft or rejected report. Only the fields
// present in Values are touched.
type EditReportRequest struct {
	Values map[string]string `json:"values,omitempty"` // field name -> decimal string
	Notes  *string           `json:"notes,omitempty"`
	Actor  ActorDTO          `json:"actor"`
}

// ActorDTO identifies who is performing a lifecycle action.
type ActorDTO struct {
	ID   string `json:"id"`
	Role string `json:"role"` // submitter | approver | admin
}

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Actor  ActorDTO `json:"actor"`
	Reason string   `json:"reason"`
}

// TransitionRequest is the body for submit/approve actions.
type TransitionRequest struct {
	Actor ActorDTO `json:"actor"`
}

// ReportDTO represents a weekly period report in API responses.
type ReportDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Period    PeriodDTO `json:"period"`

	Workforce           int    `json:"workforce"`
	Inductions          int    `json:"inductions"`
	Findings            int    `json:"findings"`
	FindingsClosed      int    `json:"findings_closed"`
	NearMisses          int    `json:"near_misses"`
	FirstAidCases       int    `json:"first_aid_cases"`
	Accidents           int    `json:"accidents"`
	LostWorkdays        int    `json:"lost_workdays"`
	HoursWorked         string `json:"hours_worked"`
	Inspections         int    `json:"inspections"`
	DisciplinaryActions int    `json:"disciplinary_actions"`

	WaterConsumption       string `json:"water_consumption"`
	ElectricityConsumption string `json:"electricity_consumption"`

	HSECompliance     *string `json:"hse_compliance,omitempty"`
	MedicalCompliance *string `json:"medical_compliance,omitempty"`
	NoiseLevel        *string `json:"noise_level,omitempty"`

	TrainingHours string `json:"training_hours"`
	WorkPermits   int    `json:"work_permits"`

	TF string `json:"tf"`
	TG string `json:"tg"`

	Notes string `json:"notes,omitempty"`

	Status          string   `json:"status"`
	LegalActions    []string `json:"legal_actions"`
	SubmittedBy     string   `json:"submitted_by"`
	SubmissionCount int      `json:"submission_count"`
	LastSubmittedAt *string  `json:"last_submitted_at,omitempty"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	RejectedBy      string   `json:"rejected_by,omitempty"`
	RejectedAt      *string  `json:"rejected_at,omitempty"`
	ApprovedBy      string   `json:"approved_by,omitempty"`
	ApprovedAt      *string  `json:"approved_at,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// =============================================================================
// PERIOD / AGGREGATE TYPES
// =============================================================================

// PeriodDTO is a resolved weekly window.
type PeriodDTO struct {
	Number int    `json:"number"`
	Year   int    `json:"year"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// MonthlyRowDTO is one pole row of the monthly dashboard.
type MonthlyRowDTO struct {
	Pole         string             `json:"pole"`
	Month        int                `json:"month"`
	Year         int                `json:"year"`
	Values       map[string]*string `json:"values"` // field -> decimal string, null = no data
	ClosureRate  string             `json:"closure_rate"`
	ProjectCount int                `json:"project_count"`
	ReportCount  int                `json:"report_count"`
}

// =============================================================================
// SOURCE COLLECTION TYPES
// =============================================================================

// TrainingRequest records a training or awareness session.
type TrainingRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD, resolved to a week
	Topic     string `json:"topic"`
	Hours     string `json:"hours"`
	Attendees int    `json:"attendees"`
}

// PermitRequest records an issued work permit.
type PermitRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, resolved to a week
	Kind string `json:"kind"`
}

// =============================================================================
// SCENARIO / ERROR TYPES
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPeriodDTO(p hse.PeriodRef) PeriodDTO {
	return PeriodDTO{
		Number: p.Number,
		Year:   p.Year,
		Start:  p.Start.String(),
		End:    p.End.String(),
	}
}

func toEntryDTO(e hse.DailyEntry) EntryDTO {
	return EntryDTO{
		ID:                  string(e.ID),
		ProjectID:           string(e.ProjectID),
		EntryDate:           e.EntryDate.String(),
		SubmittedBy:         e.SubmittedBy,
		Status:              string(e.Status),
		Workforce:           e.Workforce,
		Inductions:          e.Inductions,
		Findings:            e.Findings,
		FindingsClosed:      e.FindingsClosed,
		NearMisses:          e.NearMisses,
		FirstAidCases:       e.FirstAidCases,
		Accidents:           e.Accidents,
		LostWorkdays:        e.LostWorkdays,
		HoursWorked:         e.HoursWorked.String(),
		Inspections:         e.Inspections,
		DisciplinaryActions: e.DisciplinaryActions,

		WaterConsumption:       e.WaterConsumption.String(),
		ElectricityConsumption: e.ElectricityConsumption.String(),

		HSECompliance:     decimalString(e.HSECompliance),
		MedicalCompliance: decimalString(e.MedicalCompliance),
		NoiseLevel:        decimalString(e.NoiseLevel),

		CreatedAt: formatTime(e.CreatedAt),
	}
}

func toEntryDTOs(entries []hse.DailyEntry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	return dtos
}

func toReportDTO(r hse.PeriodReport) ReportDTO {
	actions := hse.LegalActions(r.Status)
	legal := make([]string, len(actions))
	for i, a := range actions {
		legal[i] = string(a)
	}

	return ReportDTO{
		ID:        string(r.ID),
		ProjectID: string(r.ProjectID),
		Period:    toPeriodDTO(r.Period),

		Workforce:           r.Workforce,
		Inductions:          r.Inductions,
		Findings:            r.Findings,
		FindingsClosed:      r.FindingsClosed,
		NearMisses:          r.NearMisses,
		FirstAidCases:       r.FirstAidCases,
		Accidents:           r.Accidents,
		LostWorkdays:        r.LostWorkdays,
		HoursWorked:         r.HoursWorked.String(),
		Inspections:         r.Inspections,
		DisciplinaryActions: r.DisciplinaryActions,

		WaterConsumption:       r.WaterConsumption.String(),
		ElectricityConsumption: r.ElectricityConsumption.String(),

		HSECompliance:     decimalString(r.HSECompliance),
		MedicalCompliance: decimalString(r.MedicalCompliance),
		NoiseLevel:        decimalString(r.NoiseLevel),

		TrainingHours: r.TrainingHours.String(),
		WorkPermits:   r.WorkPermits,

		TF: r.TFValue.String(),
		TG: r.TGValue.String(),

		Notes: r.Notes,

		Status:          string(r.Status),
		LegalActions:    legal,
		SubmittedBy:     r.SubmittedBy,
		SubmissionCount: r.SubmissionCount,
		LastSubmittedAt: timeString(r.LastSubmittedAt),
		RejectionReason: r.RejectionReason,
		RejectedBy:      r.RejectedBy,
		RejectedAt:      timeString(r.RejectedAt),
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      timeString(r.ApprovedAt),

		CreatedAt: formatTime(r.CreatedAt),
	}
}

func toReportDTOs(reports []hse.PeriodReport) []ReportDTO {
	dtos := make([]ReportDTO, len(reports))
	for i, r := range reports {
		dtos[i] = toReportDTO(r)
	}
	return dtos
}

func toMonthlyRowDTO(row hse.MonthlyAggregate) MonthlyRowDTO {
	values := make(map[string]*string, len(row.Values))
	for field, v := range row.Values {
		if v.Valid {
			s := v.Dec.String()
			values[string(field)] = &s
		} else {
			values[string(field)] = nil
		}
	}
	return MonthlyRowDTO{
		Pole:         string(row.Pole),
		Month:        int(row.Month),
		Year:         row.Year,
		Values:       values,
		ClosureRate:  row.ClosureRate.String(),
		ProjectCount: row.ProjectCount,
		ReportCount:  row.ReportCount,
	}
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
