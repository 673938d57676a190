/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements every engine collaborator interface using SQLite. In
  production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

INTERFACES IMPLEMENTED:
  hse.DailyEntryStore:      Daily entry persistence and period queries
  hse.TrainingStore:        Training session totals
  hse.AwarenessStore:       Awareness session totals
  hse.WorkPermitStore:      Work permit counts
  hse.ReportStore:          Period report persistence
  hse.ProjectPoleDirectory: Project -> pole membership

UNIQUENESS ENFORCEMENT:
  Two partial unique indexes are the engine's concurrency guards:
  - idx_unique_entry_day:     one non-deleted entry per (project, date)
  - idx_unique_report_period: one non-deleted report per
                              (project, period number, period year)
  Violations surface as hse.ErrDuplicateEntry / hse.DuplicatePeriodError,
  never as silent overwrites.

SOFT DELETION:
  Entries and reports are never hard-deleted; a deleted flag removes them
  from the partial indexes and from every query.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/hse.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  manager := &hse.LifecycleManager{Reports: store, ...}

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - hse/store.go: Interface definitions
  - hse/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/hse-engine/hse"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		pole TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_projects_pole ON projects(pole);

	CREATE TABLE IF NOT EXISTS daily_entries (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		entry_date TEXT NOT NULL,
		submitted_by TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		workforce INTEGER NOT NULL DEFAULT 0,
		inductions INTEGER NOT NULL DEFAULT 0,
		findings INTEGER NOT NULL DEFAULT 0,
		findings_closed INTEGER NOT NULL DEFAULT 0,
		near_misses INTEGER NOT NULL DEFAULT 0,
		first_aid_cases INTEGER NOT NULL DEFAULT 0,
		accidents INTEGER NOT NULL DEFAULT 0,
		lost_workdays INTEGER NOT NULL DEFAULT 0,
		hours_worked TEXT NOT NULL DEFAULT '0',
		inspections INTEGER NOT NULL DEFAULT 0,
		disciplinary_actions INTEGER NOT NULL DEFAULT 0,
		water_consumption TEXT NOT NULL DEFAULT '0',
		electricity_consumption TEXT NOT NULL DEFAULT '0',
		hse_compliance TEXT,
		medical_compliance TEXT,
		noise_level TEXT,
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- One non-deleted entry per (project, calendar date).
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_entry_day
		ON daily_entries(project_id, entry_date) WHERE deleted = 0;
	CREATE INDEX IF NOT EXISTS idx_entries_project_date
		ON daily_entries(project_id, entry_date);

	CREATE TABLE IF NOT EXISTS period_reports (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		period_number INTEGER NOT NULL,
		period_year INTEGER NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		workforce INTEGER NOT NULL DEFAULT 0,
		inductions INTEGER NOT NULL DEFAULT 0,
		findings INTEGER NOT NULL DEFAULT 0,
		findings_closed INTEGER NOT NULL DEFAULT 0,
		near_misses INTEGER NOT NULL DEFAULT 0,
		first_aid_cases INTEGER NOT NULL DEFAULT 0,
		accidents INTEGER NOT NULL DEFAULT 0,
		lost_workdays INTEGER NOT NULL DEFAULT 0,
		hours_worked TEXT NOT NULL DEFAULT '0',
		inspections INTEGER NOT NULL DEFAULT 0,
		disciplinary_actions INTEGER NOT NULL DEFAULT 0,
		water_consumption TEXT NOT NULL DEFAULT '0',
		electricity_consumption TEXT NOT NULL DEFAULT '0',
		hse_compliance TEXT,
		medical_compliance TEXT,
		noise_level TEXT,
		training_hours TEXT NOT NULL DEFAULT '0',
		work_permits INTEGER NOT NULL DEFAULT 0,
		tf_value TEXT NOT NULL DEFAULT '0',
		tg_value TEXT NOT NULL DEFAULT '0',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		submitted_by TEXT NOT NULL DEFAULT '',
		submission_count INTEGER NOT NULL DEFAULT 1,
		last_submitted_at TEXT,
		rejection_reason TEXT NOT NULL DEFAULT '',
		rejected_by TEXT NOT NULL DEFAULT '',
		rejected_at TEXT,
		approved_by TEXT NOT NULL DEFAULT '',
		approved_at TEXT,
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Exactly one non-deleted report per (project, period number, period year).
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_report_period
		ON period_reports(project_id, period_number, period_year) WHERE deleted = 0;
	CREATE INDEX IF NOT EXISTS idx_reports_period_start
		ON period_reports(period_start);

	CREATE TABLE IF NOT EXISTS trainings (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		period_number INTEGER NOT NULL,
		period_year INTEGER NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL DEFAULT '0',
		attendees INTEGER NOT NULL DEFAULT 0,
		held_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trainings_scope
		ON trainings(project_id, period_number, period_year);

	CREATE TABLE IF NOT EXISTS awareness_sessions (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		period_number INTEGER NOT NULL,
		period_year INTEGER NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL DEFAULT '0',
		attendees INTEGER NOT NULL DEFAULT 0,
		held_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_awareness_scope
		ON awareness_sessions(project_id, period_number, period_year);

	CREATE TABLE IF NOT EXISTS work_permits (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		period_number INTEGER NOT NULL,
		period_year INTEGER NOT NULL,
		kind TEXT NOT NULL DEFAULT '',
		issued_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_permits_scope
		ON work_permits(project_id, period_number, period_year);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROJECTS (hse.ProjectPoleDirectory)
// =============================================================================

func (s *Store) SaveProject(ctx context.Context, p hse.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, pole, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, pole = excluded.pole`,
		p.ID, p.Name, p.Pole, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, id hse.ProjectID) (*hse.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p hse.Project
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, pole FROM projects WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Pole)
	if err == sql.ErrNoRows {
		return nil, hse.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

func (s *Store) Projects(ctx context.Context) ([]hse.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, pole FROM projects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []hse.Project
	for rows.Next() {
		var p hse.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Pole); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) PolesOf(ctx context.Context, projectIDs []hse.ProjectID) (map[hse.ProjectID]hse.Pole, error) {
	result := make(map[hse.ProjectID]hse.Pole, len(projectIDs))
	for _, id := range projectIDs {
		p, err := s.GetProject(ctx, id)
		if err == hse.ErrProjectNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		result[id] = p.Pole
	}
	return result, nil
}

// =============================================================================
// DAILY ENTRIES (hse.DailyEntryStore)
// =============================================================================

// SaveEntry inserts or updates a daily entry. Inserting a second entry for
// the same (project, date) fails with hse.ErrDuplicateEntry.
func (s *Store) SaveEntry(ctx context.Context, e hse.DailyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_entries
		(id, project_id, entry_date, submitted_by, status,
		 workforce, inductions, findings, findings_closed, near_misses,
		 first_aid_cases, accidents, lost_workdays, hours_worked, inspections,
		 disciplinary_actions, water_consumption, electricity_consumption,
		 hse_compliance, medical_compliance, noise_level, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			submitted_by = excluded.submitted_by,
			status = excluded.status,
			workforce = excluded.workforce,
			inductions = excluded.inductions,
			findings = excluded.findings,
			findings_closed = excluded.findings_closed,
			near_misses = excluded.near_misses,
			first_aid_cases = excluded.first_aid_cases,
			accidents = excluded.accidents,
			lost_workdays = excluded.lost_workdays,
			hours_worked = excluded.hours_worked,
			inspections = excluded.inspections,
			disciplinary_actions = excluded.disciplinary_actions,
			water_consumption = excluded.water_consumption,
			electricity_consumption = excluded.electricity_consumption,
			hse_compliance = excluded.hse_compliance,
			medical_compliance = excluded.medical_compliance,
			noise_level = excluded.noise_level,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at`,
		e.ID, e.ProjectID, e.EntryDate.String(), e.SubmittedBy, e.Status,
		e.Workforce, e.Inductions, e.Findings, e.FindingsClosed, e.NearMisses,
		e.FirstAidCases, e.Accidents, e.LostWorkdays, e.HoursWorked.String(), e.Inspections,
		e.DisciplinaryActions, e.WaterConsumption.String(), e.ElectricityConsumption.String(),
		nullDecimal(e.HSECompliance), nullDecimal(e.MedicalCompliance), nullDecimal(e.NoiseLevel),
		boolInt(e.Deleted), e.CreatedAt.Format(time.RFC3339), now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return hse.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to save daily entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id hse.EntryID) (*hse.DailyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, entrySelect+" WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily entry: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, hse.ErrEntryNotFound
	}
	return &entries[0], nil
}

func (s *Store) EntriesForPeriod(ctx context.Context, projectID hse.ProjectID, period hse.PeriodRef) ([]hse.DailyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, entrySelect+`
		WHERE project_id = ? AND deleted = 0
		  AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date ASC`,
		projectID, period.Start.String(), period.End.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// SoftDeleteEntry marks an entry deleted, freeing its (project, date) slot.
func (s *Store) SoftDeleteEntry(ctx context.Context, id hse.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE daily_entries SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0",
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete daily entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return hse.ErrEntryNotFound
	}
	return nil
}

const entrySelect = `
	SELECT id, project_id, entry_date, submitted_by, status,
	       workforce, inductions, findings, findings_closed, near_misses,
	       first_aid_cases, accidents, lost_workdays, hours_worked, inspections,
	       disciplinary_actions, water_consumption, electricity_consumption,
	       hse_compliance, medical_compliance, noise_level, deleted, created_at, updated_at
	FROM daily_entries`

func scanEntries(rows *sql.Rows) ([]hse.DailyEntry, error) {
	var entries []hse.DailyEntry
	for rows.Next() {
		var (
			e                                    hse.DailyEntry
			entryDate, hours, water, electricity string
			hseComp, medComp, noise              sql.NullString
			deleted                              int
			createdAt, updatedAt                 string
		)
		err := rows.Scan(
			&e.ID, &e.ProjectID, &entryDate, &e.SubmittedBy, &e.Status,
			&e.Workforce, &e.Inductions, &e.Findings, &e.FindingsClosed, &e.NearMisses,
			&e.FirstAidCases, &e.Accidents, &e.LostWorkdays, &hours, &e.Inspections,
			&e.DisciplinaryActions, &water, &electricity,
			&hseComp, &medComp, &noise, &deleted, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily entry: %w", err)
		}
		e.EntryDate, _ = hse.ParseDate(entryDate)
		e.HoursWorked = mustDecimal(hours)
		e.WaterConsumption = mustDecimal(water)
		e.ElectricityConsumption = mustDecimal(electricity)
		e.HSECompliance = decimalPtr(hseComp)
		e.MedicalCompliance = decimalPtr(medComp)
		e.NoiseLevel = decimalPtr(noise)
		e.Deleted = deleted != 0
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// SOURCE COLLECTIONS (hse.TrainingStore, hse.AwarenessStore, hse.WorkPermitStore)
// =============================================================================

func (s *Store) AddTraining(ctx context.Context, t hse.Training) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trainings (id, project_id, period_number, period_year, topic, hours, attendees, held_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Period.Number, t.Period.Year, t.Topic, t.Hours.String(), t.Attendees, t.HeldAt.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save training: %w", err)
	}
	return nil
}

func (s *Store) AddAwarenessSession(ctx context.Context, a hse.AwarenessSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO awareness_sessions (id, project_id, period_number, period_year, topic, hours, attendees, held_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ProjectID, a.Period.Number, a.Period.Year, a.Topic, a.Hours.String(), a.Attendees, a.HeldAt.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save awareness session: %w", err)
	}
	return nil
}

func (s *Store) AddWorkPermit(ctx context.Context, p hse.WorkPermit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_permits (id, project_id, period_number, period_year, kind, issued_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProjectID, p.Period.Number, p.Period.Year, p.Kind, p.IssuedAt.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save work permit: %w", err)
	}
	return nil
}

func (s *Store) TrainingTotals(ctx context.Context, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	return s.sourceTotals(ctx, "trainings", projectID, period)
}

func (s *Store) AwarenessTotals(ctx context.Context, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	return s.sourceTotals(ctx, "awareness_sessions", projectID, period)
}

func (s *Store) PermitTotals(ctx context.Context, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM work_permits
		WHERE project_id = ? AND period_number = ? AND period_year = ?`,
		projectID, period.Number, period.Year,
	).Scan(&count)
	if err != nil {
		return hse.SourceTotals{}, fmt.Errorf("failed to count work permits: %w", err)
	}
	return hse.SourceTotals{Count: count, Hours: decimal.Zero}, nil
}

// sourceTotals sums hours in Go rather than SQL: the hours column stores
// decimal strings, which SQLite would coerce to floats.
func (s *Store) sourceTotals(ctx context.Context, table string, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT hours FROM "+table+" WHERE project_id = ? AND period_number = ? AND period_year = ?",
		projectID, period.Number, period.Year,
	)
	if err != nil {
		return hse.SourceTotals{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	totals := hse.SourceTotals{Hours: decimal.Zero}
	for rows.Next() {
		var hours string
		if err := rows.Scan(&hours); err != nil {
			return hse.SourceTotals{}, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		totals.Count++
		totals.Hours = totals.Hours.Add(mustDecimal(hours))
	}
	return totals, rows.Err()
}

// =============================================================================
// PERIOD REPORTS (hse.ReportStore)
// =============================================================================

func (s *Store) FindReport(ctx context.Context, projectID hse.ProjectID, periodNumber, periodYear int) (*hse.PeriodReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports, err := s.queryReports(ctx, reportSelect+`
		WHERE project_id = ? AND period_number = ? AND period_year = ? AND deleted = 0`,
		projectID, periodNumber, periodYear,
	)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return &reports[0], nil
}

func (s *Store) GetReport(ctx context.Context, id hse.ReportID) (*hse.PeriodReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports, err := s.queryReports(ctx, reportSelect+" WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, hse.ErrReportNotFound
	}
	return &reports[0], nil
}

// ReportsForProject lists a project's non-deleted reports, newest period first.
func (s *Store) ReportsForProject(ctx context.Context, projectID hse.ProjectID) ([]hse.PeriodReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryReports(ctx, reportSelect+`
		WHERE project_id = ? AND deleted = 0
		ORDER BY period_start DESC`,
		projectID,
	)
}

// SaveReport inserts or updates. Inserting into an occupied period slot
// trips idx_unique_report_period and surfaces as DuplicatePeriodError.
func (s *Store) SaveReport(ctx context.Context, r *hse.PeriodReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO period_reports
		(id, project_id, period_number, period_year, period_start, period_end,
		 workforce, inductions, findings, findings_closed, near_misses,
		 first_aid_cases, accidents, lost_workdays, hours_worked, inspections,
		 disciplinary_actions, water_consumption, electricity_consumption,
		 hse_compliance, medical_compliance, noise_level,
		 training_hours, work_permits, tf_value, tg_value, notes, status,
		 submitted_by, submission_count, last_submitted_at,
		 rejection_reason, rejected_by, rejected_at,
		 approved_by, approved_at, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			workforce = excluded.workforce,
			inductions = excluded.inductions,
			findings = excluded.findings,
			findings_closed = excluded.findings_closed,
			near_misses = excluded.near_misses,
			first_aid_cases = excluded.first_aid_cases,
			accidents = excluded.accidents,
			lost_workdays = excluded.lost_workdays,
			hours_worked = excluded.hours_worked,
			inspections = excluded.inspections,
			disciplinary_actions = excluded.disciplinary_actions,
			water_consumption = excluded.water_consumption,
			electricity_consumption = excluded.electricity_consumption,
			hse_compliance = excluded.hse_compliance,
			medical_compliance = excluded.medical_compliance,
			noise_level = excluded.noise_level,
			training_hours = excluded.training_hours,
			work_permits = excluded.work_permits,
			tf_value = excluded.tf_value,
			tg_value = excluded.tg_value,
			notes = excluded.notes,
			status = excluded.status,
			submitted_by = excluded.submitted_by,
			submission_count = excluded.submission_count,
			last_submitted_at = excluded.last_submitted_at,
			rejection_reason = excluded.rejection_reason,
			rejected_by = excluded.rejected_by,
			rejected_at = excluded.rejected_at,
			approved_by = excluded.approved_by,
			approved_at = excluded.approved_at,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at`,
		r.ID, r.ProjectID, r.Period.Number, r.Period.Year,
		r.Period.Start.String(), r.Period.End.String(),
		r.Workforce, r.Inductions, r.Findings, r.FindingsClosed, r.NearMisses,
		r.FirstAidCases, r.Accidents, r.LostWorkdays, r.HoursWorked.String(), r.Inspections,
		r.DisciplinaryActions, r.WaterConsumption.String(), r.ElectricityConsumption.String(),
		nullDecimal(r.HSECompliance), nullDecimal(r.MedicalCompliance), nullDecimal(r.NoiseLevel),
		r.TrainingHours.String(), r.WorkPermits, r.TFValue.String(), r.TGValue.String(), r.Notes, r.Status,
		r.SubmittedBy, r.SubmissionCount, nullTime(r.LastSubmittedAt),
		r.RejectionReason, r.RejectedBy, nullTime(r.RejectedAt),
		r.ApprovedBy, nullTime(r.ApprovedAt), boolInt(r.Deleted),
		r.CreatedAt.Format(time.RFC3339), now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return &hse.DuplicatePeriodError{
				ProjectID:    r.ProjectID,
				PeriodNumber: r.Period.Number,
				PeriodYear:   r.Period.Year,
			}
		}
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *Store) SoftDeleteReport(ctx context.Context, id hse.ReportID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE period_reports SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0",
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return hse.ErrReportNotFound
	}
	return nil
}

func (s *Store) ReportsForMonth(ctx context.Context, year int, month int) ([]hse.PeriodReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	monthStart := hse.NewDate(year, time.Month(month), 1)
	rollover := monthStart.AddDays(32)
	monthEnd := hse.NewDate(rollover.Year(), rollover.Month(), 1).AddDays(-1)

	return s.queryReports(ctx, reportSelect+`
		WHERE deleted = 0 AND period_start >= ? AND period_start <= ?
		ORDER BY period_start ASC`,
		monthStart.String(), monthEnd.String(),
	)
}

const reportSelect = `
	SELECT id, project_id, period_number, period_year, period_start, period_end,
	       workforce, inductions, findings, findings_closed, near_misses,
	       first_aid_cases, accidents, lost_workdays, hours_worked, inspections,
	       disciplinary_actions, water_consumption, electricity_consumption,
	       hse_compliance, medical_compliance, noise_level,
	       training_hours, work_permits, tf_value, tg_value, notes, status,
	       submitted_by, submission_count, last_submitted_at,
	       rejection_reason, rejected_by, rejected_at,
	       approved_by, approved_at, deleted, created_at, updated_at
	FROM period_reports`

func (s *Store) queryReports(ctx context.Context, query string, args ...any) ([]hse.PeriodReport, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []hse.PeriodReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func scanReport(rows *sql.Rows) (hse.PeriodReport, error) {
	var (
		r                                       hse.PeriodReport
		periodStart, periodEnd                  string
		hours, water, electricity               string
		hseComp, medComp, noise                 sql.NullString
		trainingHours, tfValue, tgValue         string
		lastSubmittedAt, rejectedAt, approvedAt sql.NullString
		deleted                                 int
		createdAt, updatedAt                    string
	)

	err := rows.Scan(
		&r.ID, &r.ProjectID, &r.Period.Number, &r.Period.Year, &periodStart, &periodEnd,
		&r.Workforce, &r.Inductions, &r.Findings, &r.FindingsClosed, &r.NearMisses,
		&r.FirstAidCases, &r.Accidents, &r.LostWorkdays, &hours, &r.Inspections,
		&r.DisciplinaryActions, &water, &electricity,
		&hseComp, &medComp, &noise,
		&trainingHours, &r.WorkPermits, &tfValue, &tgValue, &r.Notes, &r.Status,
		&r.SubmittedBy, &r.SubmissionCount, &lastSubmittedAt,
		&r.RejectionReason, &r.RejectedBy, &rejectedAt,
		&r.ApprovedBy, &approvedAt, &deleted, &createdAt, &updatedAt,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan report: %w", err)
	}

	r.Period.Start, _ = hse.ParseDate(periodStart)
	r.Period.End, _ = hse.ParseDate(periodEnd)
	r.HoursWorked = mustDecimal(hours)
	r.WaterConsumption = mustDecimal(water)
	r.ElectricityConsumption = mustDecimal(electricity)
	r.HSECompliance = decimalPtr(hseComp)
	r.MedicalCompliance = decimalPtr(medComp)
	r.NoiseLevel = decimalPtr(noise)
	r.TrainingHours = mustDecimal(trainingHours)
	r.TFValue = mustDecimal(tfValue)
	r.TGValue = mustDecimal(tgValue)
	r.LastSubmittedAt = timePtr(lastSubmittedAt)
	r.RejectedAt = timePtr(rejectedAt)
	r.ApprovedAt = timePtr(approvedAt)
	r.Deleted = deleted != 0
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset clears all data. Dev/demo environments only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"daily_entries", "period_reports", "trainings", "awareness_sessions", "work_permits", "projects"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decimalPtr(ns sql.NullString) *decimal.Decimal {
	if !ns.Valid {
		return nil
	}
	d := mustDecimal(ns.String)
	return &d
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func timePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
