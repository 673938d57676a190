/*
store.go - Collaborator interfaces consumed by the engine

PURPOSE:
  Defines the interfaces between the engine and its persistence
  collaborators. The engine never owns I/O policy: timeouts and retries
  belong to the implementations. Different implementations back these with
  SQLite, PostgreSQL, or in-memory maps.

KEY INTERFACES:
  DailyEntryStore:      Daily entries scoped to a project + period
  TrainingStore et al.: Independent source collections for auto-population
  ReportStore:          Period report persistence with uniqueness guard
  ProjectPoleDirectory: Project -> pole membership for monthly rollups

UNIQUENESS GUARD:
  SaveReport on a new report must fail atomically with ErrDuplicatePeriod
  (or a *DuplicatePeriodError) when a non-deleted report already occupies
  the (project, period number, period year) slot. The store's unique
  constraint is the sole concurrency guard; the engine adds no locking.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - hse/store:    In-memory for testing/dev

SEE ALSO:
  - draft.go: Consumes the entry + source stores
  - lifecycle.go: Consumes ReportStore
  - monthly.go: Consumes ReportStore + ProjectPoleDirectory
*/
package hse

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAILY ENTRIES
// =============================================================================

// DailyEntryStore provides read access to daily entries for aggregation.
type DailyEntryStore interface {
	// EntriesForPeriod returns all non-deleted entries for the project
	// whose entry date falls inside the period, in any order.
	EntriesForPeriod(ctx context.Context, projectID ProjectID, period PeriodRef) ([]DailyEntry, error)
}

// =============================================================================
// CROSS-SOURCE COLLECTIONS
// =============================================================================

// SourceTotals carries the reduced counts of one source collection for a
// (project, period) scope.
type SourceTotals struct {
	Count int
	Hours decimal.Decimal
}

// Training is one training session record. The engine only ever reads the
// reduced totals; the full rows are owned by the CRUD surfaces.
type Training struct {
	ID        string
	ProjectID ProjectID
	Period    PeriodRef
	Topic     string
	Hours     decimal.Decimal
	Attendees int
	HeldAt    Date
}

// AwarenessSession is one toolbox-talk / awareness session record.
type AwarenessSession struct {
	ID        string
	ProjectID ProjectID
	Period    PeriodRef
	Topic     string
	Hours     decimal.Decimal
	Attendees int
	HeldAt    Date
}

// WorkPermit is one issued work permit record.
type WorkPermit struct {
	ID        string
	ProjectID ProjectID
	Period    PeriodRef
	Kind      string
	IssuedAt  Date
}

// TrainingStore sums training sessions scoped to a project + period.
type TrainingStore interface {
	TrainingTotals(ctx context.Context, projectID ProjectID, period PeriodRef) (SourceTotals, error)
}

// AwarenessStore sums awareness sessions scoped to a project + period.
type AwarenessStore interface {
	AwarenessTotals(ctx context.Context, projectID ProjectID, period PeriodRef) (SourceTotals, error)
}

// WorkPermitStore counts work permits scoped to a project + period.
type WorkPermitStore interface {
	PermitTotals(ctx context.Context, projectID ProjectID, period PeriodRef) (SourceTotals, error)
}

// =============================================================================
// PERIOD REPORTS
// =============================================================================

// ReportStore persists period reports and enforces the
// one-report-per-project-per-period invariant.
type ReportStore interface {
	// FindReport returns the non-deleted report for the slot, or nil
	// when the slot is free.
	FindReport(ctx context.Context, projectID ProjectID, periodNumber, periodYear int) (*PeriodReport, error)

	// GetReport returns a report by ID. ErrReportNotFound when missing
	// or soft-deleted.
	GetReport(ctx context.Context, id ReportID) (*PeriodReport, error)

	// SaveReport inserts or updates a report. Inserting into an occupied
	// slot fails with an error wrapping ErrDuplicatePeriod.
	SaveReport(ctx context.Context, report *PeriodReport) error

	// SoftDeleteReport marks a report deleted, freeing its period slot.
	SoftDeleteReport(ctx context.Context, id ReportID) error

	// ReportsForMonth returns all non-deleted reports whose period start
	// falls in the given month, across all projects.
	ReportsForMonth(ctx context.Context, year int, month int) ([]PeriodReport, error)
}

// =============================================================================
// PROJECT / POLE DIRECTORY
// =============================================================================

// ProjectPoleDirectory resolves pole membership. Injected explicitly into
// the monthly aggregator rather than read from ambient global state.
type ProjectPoleDirectory interface {
	// Projects returns all known projects with their pole.
	Projects(ctx context.Context) ([]Project, error)

	// PolesOf maps each given project ID to its pole. Unknown IDs are
	// absent from the result.
	PolesOf(ctx context.Context, projectIDs []ProjectID) (map[ProjectID]Pole, error)
}
