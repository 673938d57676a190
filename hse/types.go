/*
Package hse provides the KPI aggregation and safety-rate computation engine.

PURPOSE:
  This package contains the domain types and algorithms for rolling up daily
  occupational health & safety entries into weekly period reports, computing
  derived safety rates (TF/TG), governing the report approval lifecycle, and
  projecting monthly dashboards per organizational pole.

KEY CONCEPTS IN THIS FILE (types.go):
  - Field: A named KPI indicator (accidents, hours worked, compliance %, ...)
  - Value: A nullable decimal, distinguishing "no data" from "measured zero"
  - DailyEntry: One site submission per (project, calendar date)
  - PeriodReport: The weekly report entity with lifecycle state
  - MonthlyAggregate: Dashboard read model per (pole, month, year)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Null-awareness: Absent measurements are Value{Valid: false}, never zero
  3. Type Safety: Strong typing for project/pole/report identifiers
  4. Snapshot semantics: Auto-populated report fields are plain copies,
     never live references back to their source rows

SEE ALSO:
  - reduction.go: Per-field reduction strategies (SUM/MAX/AVERAGE/LATEST)
  - rollup.go: Daily entry reduction into one period aggregate
  - lifecycle.go: Report state machine
  - monthly.go: Pole-level monthly rollup
*/
package hse

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ProjectID string
type ReportID string
type EntryID string
type Pole string

// Project is a construction project tracked by the HSE system.
// Pole is the organizational grouping used for dashboard rollups.
type Project struct {
	ID   ProjectID
	Name string
	Pole Pole
}

// =============================================================================
// FIELD - KPI indicator catalog
// =============================================================================

// Field names a single KPI indicator carried by daily entries and period
// reports. The reduction strategy for each field is declared in
// reduction.go, not hard-coded per field.
type Field string

const (
	FieldWorkforce              Field = "workforce"
	FieldInductions             Field = "inductions"
	FieldFindings               Field = "findings"
	FieldFindingsClosed         Field = "findings_closed"
	FieldNearMisses             Field = "near_misses"
	FieldFirstAidCases          Field = "first_aid_cases"
	FieldAccidents              Field = "accidents"
	FieldLostWorkdays           Field = "lost_workdays"
	FieldHoursWorked            Field = "hours_worked"
	FieldInspections            Field = "inspections"
	FieldDisciplinaryActions    Field = "disciplinary_actions"
	FieldWaterConsumption       Field = "water_consumption"
	FieldElectricityConsumption Field = "electricity_consumption"
	FieldHSECompliance          Field = "hse_compliance"
	FieldMedicalCompliance      Field = "medical_compliance"
	FieldNoiseLevel             Field = "noise_level"

	// Auto-populated at draft creation from source tables (4.4), not
	// reduced from daily entries.
	FieldTrainingHours Field = "training_hours"
	FieldWorkPermits   Field = "work_permits"
)

// =============================================================================
// VALUE - Nullable decimal
// =============================================================================

// Value is a KPI measurement that may be absent. An absent measurement
// (Valid == false) is excluded from averages and never coerced to zero.
type Value struct {
	Dec   decimal.Decimal
	Valid bool
}

func Null() Value                         { return Value{} }
func ValueOf(d decimal.Decimal) Value     { return Value{Dec: d, Valid: true} }
func ValueOfInt(n int) Value              { return Value{Dec: decimal.NewFromInt(int64(n)), Valid: true} }
func ValueOfPtr(d *decimal.Decimal) Value {
	if d == nil {
		return Null()
	}
	return Value{Dec: *d, Valid: true}
}

// IntPart returns the value truncated to an int. Zero when null.
func (v Value) IntPart() int {
	if !v.Valid {
		return 0
	}
	return int(v.Dec.IntPart())
}

// Ptr returns the value as a *decimal.Decimal, nil when null.
func (v Value) Ptr() *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Dec
	return &d
}

// FieldReader is implemented by record types whose KPI fields can be read
// uniformly by field name. Both DailyEntry and PeriodReport implement it,
// which lets the daily and monthly aggregators share one reduction path.
type FieldReader interface {
	Value(f Field) Value
}

// Aggregate holds one reduced Value per field.
type Aggregate map[Field]Value

// =============================================================================
// DAILY ENTRY - One submission per (project, calendar date)
// =============================================================================

type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntrySubmitted EntryStatus = "submitted"
)

// DailyEntry is a single day's HSE submission for one project.
// At most one non-deleted entry exists per (ProjectID, EntryDate); the
// persistence layer enforces this with a unique index.
// Entries are never hard-deleted, only soft-marked.
type DailyEntry struct {
	ID          EntryID
	ProjectID   ProjectID
	EntryDate   Date
	SubmittedBy string
	Status      EntryStatus

	Workforce           int
	Inductions          int
	Findings            int
	FindingsClosed      int
	NearMisses          int
	FirstAidCases       int
	Accidents           int
	LostWorkdays        int
	HoursWorked         decimal.Decimal
	Inspections         int
	DisciplinaryActions int

	WaterConsumption       decimal.Decimal
	ElectricityConsumption decimal.Decimal

	// Nullable measurements: nil means not measured that day.
	HSECompliance     *decimal.Decimal // percentage 0-100
	MedicalCompliance *decimal.Decimal // percentage 0-100
	NoiseLevel        *decimal.Decimal // dB(A)

	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Value reads a KPI field by name. Fields not carried by daily entries
// (the auto-populated ones) read as null.
func (e DailyEntry) Value(f Field) Value {
	switch f {
	case FieldWorkforce:
		return ValueOfInt(e.Workforce)
	case FieldInductions:
		return ValueOfInt(e.Inductions)
	case FieldFindings:
		return ValueOfInt(e.Findings)
	case FieldFindingsClosed:
		return ValueOfInt(e.FindingsClosed)
	case FieldNearMisses:
		return ValueOfInt(e.NearMisses)
	case FieldFirstAidCases:
		return ValueOfInt(e.FirstAidCases)
	case FieldAccidents:
		return ValueOfInt(e.Accidents)
	case FieldLostWorkdays:
		return ValueOfInt(e.LostWorkdays)
	case FieldHoursWorked:
		return ValueOf(e.HoursWorked)
	case FieldInspections:
		return ValueOfInt(e.Inspections)
	case FieldDisciplinaryActions:
		return ValueOfInt(e.DisciplinaryActions)
	case FieldWaterConsumption:
		return ValueOf(e.WaterConsumption)
	case FieldElectricityConsumption:
		return ValueOf(e.ElectricityConsumption)
	case FieldHSECompliance:
		return ValueOfPtr(e.HSECompliance)
	case FieldMedicalCompliance:
		return ValueOfPtr(e.MedicalCompliance)
	case FieldNoiseLevel:
		return ValueOfPtr(e.NoiseLevel)
	default:
		return Null()
	}
}

// =============================================================================
// PERIOD REPORT - One record per (project, period number, period year)
// =============================================================================

type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

// PeriodReport is the weekly KPI report for one project. Exactly one
// non-deleted report exists per (ProjectID, Period.Number, Period.Year).
//
// Auto-populated fields (TrainingHours, WorkPermits, and every reduced
// daily field) are one-time snapshots taken at draft creation; editing
// them later never re-syncs from the sources.
type PeriodReport struct {
	ID        ReportID
	ProjectID ProjectID
	Period    PeriodRef

	Workforce           int
	Inductions          int
	Findings            int
	FindingsClosed      int
	NearMisses          int
	FirstAidCases       int
	Accidents           int
	LostWorkdays        int
	HoursWorked         decimal.Decimal
	Inspections         int
	DisciplinaryActions int

	WaterConsumption       decimal.Decimal
	ElectricityConsumption decimal.Decimal

	HSECompliance     *decimal.Decimal
	MedicalCompliance *decimal.Decimal
	NoiseLevel        *decimal.Decimal

	TrainingHours decimal.Decimal
	WorkPermits   int

	// Derived safety rates, recomputed whenever accidents, lost workdays
	// or hours worked change while the report is editable.
	TFValue decimal.Decimal
	TGValue decimal.Decimal

	Notes string

	// Lifecycle
	Status          ReportStatus
	SubmittedBy     string
	SubmissionCount int
	LastSubmittedAt *time.Time
	RejectionReason string
	RejectedBy      string
	RejectedAt      *time.Time
	ApprovedBy      string
	ApprovedAt      *time.Time

	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Value reads a KPI field by name, for the monthly rollup which reduces
// report-level rather than entry-level data.
func (r PeriodReport) Value(f Field) Value {
	switch f {
	case FieldWorkforce:
		return ValueOfInt(r.Workforce)
	case FieldInductions:
		return ValueOfInt(r.Inductions)
	case FieldFindings:
		return ValueOfInt(r.Findings)
	case FieldFindingsClosed:
		return ValueOfInt(r.FindingsClosed)
	case FieldNearMisses:
		return ValueOfInt(r.NearMisses)
	case FieldFirstAidCases:
		return ValueOfInt(r.FirstAidCases)
	case FieldAccidents:
		return ValueOfInt(r.Accidents)
	case FieldLostWorkdays:
		return ValueOfInt(r.LostWorkdays)
	case FieldHoursWorked:
		return ValueOf(r.HoursWorked)
	case FieldInspections:
		return ValueOfInt(r.Inspections)
	case FieldDisciplinaryActions:
		return ValueOfInt(r.DisciplinaryActions)
	case FieldWaterConsumption:
		return ValueOf(r.WaterConsumption)
	case FieldElectricityConsumption:
		return ValueOf(r.ElectricityConsumption)
	case FieldHSECompliance:
		return ValueOfPtr(r.HSECompliance)
	case FieldMedicalCompliance:
		return ValueOfPtr(r.MedicalCompliance)
	case FieldNoiseLevel:
		return ValueOfPtr(r.NoiseLevel)
	case FieldTrainingHours:
		return ValueOf(r.TrainingHours)
	case FieldWorkPermits:
		return ValueOfInt(r.WorkPermits)
	default:
		return Null()
	}
}

// SetValue writes a KPI field by name. Used when applying edits and when
// materializing a rollup aggregate into a draft.
func (r *PeriodReport) SetValue(f Field, v Value) {
	switch f {
	case FieldWorkforce:
		r.Workforce = v.IntPart()
	case FieldInductions:
		r.Inductions = v.IntPart()
	case FieldFindings:
		r.Findings = v.IntPart()
	case FieldFindingsClosed:
		r.FindingsClosed = v.IntPart()
	case FieldNearMisses:
		r.NearMisses = v.IntPart()
	case FieldFirstAidCases:
		r.FirstAidCases = v.IntPart()
	case FieldAccidents:
		r.Accidents = v.IntPart()
	case FieldLostWorkdays:
		r.LostWorkdays = v.IntPart()
	case FieldHoursWorked:
		r.HoursWorked = v.Dec
	case FieldInspections:
		r.Inspections = v.IntPart()
	case FieldDisciplinaryActions:
		r.DisciplinaryActions = v.IntPart()
	case FieldWaterConsumption:
		r.WaterConsumption = v.Dec
	case FieldElectricityConsumption:
		r.ElectricityConsumption = v.Dec
	case FieldHSECompliance:
		r.HSECompliance = v.Ptr()
	case FieldMedicalCompliance:
		r.MedicalCompliance = v.Ptr()
	case FieldNoiseLevel:
		r.NoiseLevel = v.Ptr()
	case FieldTrainingHours:
		r.TrainingHours = v.Dec
	case FieldWorkPermits:
		r.WorkPermits = v.IntPart()
	}
}

// Finalized reports what the monthly rollup consumes: reports that have
// left the drafting stage.
func (r PeriodReport) Finalized() bool {
	return r.Status == ReportSubmitted || r.Status == ReportApproved
}

// =============================================================================
// ACTORS
// =============================================================================

type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleApprover  Role = "approver"
	RoleAdmin     Role = "admin"
)

// Actor identifies who is driving a lifecycle transition. Authentication
// is the API layer's concern; the engine only checks the declared role.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) CanApprove() bool {
	return a.Role == RoleApprover || a.Role == RoleAdmin
}

// CanEdit reports whether the actor may change report fields. Corrections
// are the submitter's side of the cycle; approvers reject instead of
// editing in place.
func (a Actor) CanEdit() bool {
	return a.Role == RoleSubmitter || a.Role == RoleAdmin
}

// =============================================================================
// MONTHLY AGGREGATE - Dashboard read model
// =============================================================================

// MonthlyAggregate is the reduced view of all finalized reports for one
// pole in one month. Recomputed on demand, never persisted.
type MonthlyAggregate struct {
	Pole  Pole
	Month time.Month
	Year  int

	Values Aggregate

	// Deviation tracking: closed findings / raised findings * 100.
	// Zero when no findings were raised.
	ClosureRate decimal.Decimal

	ProjectCount int
	ReportCount  int
}
