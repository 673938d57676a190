// Package store provides in-memory implementations of the engine's
// collaborator interfaces, for tests and development.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements DailyEntryStore, TrainingStore, AwarenessStore,
// WorkPermitStore, ReportStore and ProjectPoleDirectory with maps guarded
// by a single RWMutex.
type Memory struct {
	mu        sync.RWMutex
	projects  map[hse.ProjectID]hse.Project
	entries   map[hse.EntryID]hse.DailyEntry
	reports   map[hse.ReportID]hse.PeriodReport
	trainings []hse.Training
	awareness []hse.AwarenessSession
	permits   []hse.WorkPermit
	seq       int
}

func NewMemory() *Memory {
	return &Memory{
		projects: make(map[hse.ProjectID]hse.Project),
		entries:  make(map[hse.EntryID]hse.DailyEntry),
		reports:  make(map[hse.ReportID]hse.PeriodReport),
	}
}

// =============================================================================
// PROJECTS / POLE DIRECTORY
// =============================================================================

func (m *Memory) SaveProject(_ context.Context, p hse.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

func (m *Memory) Projects(_ context.Context) ([]hse.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]hse.Project, 0, len(m.projects))
	for _, p := range m.projects {
		result = append(result, p)
	}
	return result, nil
}

func (m *Memory) PolesOf(_ context.Context, projectIDs []hse.ProjectID) (map[hse.ProjectID]hse.Pole, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[hse.ProjectID]hse.Pole, len(projectIDs))
	for _, id := range projectIDs {
		if p, ok := m.projects[id]; ok {
			result[id] = p.Pole
		}
	}
	return result, nil
}

// =============================================================================
// DAILY ENTRIES
// =============================================================================

// SaveEntry inserts or updates a daily entry, enforcing the one-entry-per
// (project, date) invariant for inserts.
func (m *Memory) SaveEntry(_ context.Context, entry hse.DailyEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.entries {
		if existing.ID != entry.ID &&
			!existing.Deleted &&
			existing.ProjectID == entry.ProjectID &&
			existing.EntryDate.Equal(entry.EntryDate) {
			return hse.ErrDuplicateEntry
		}
	}
	if entry.ID == "" {
		m.seq++
		entry.ID = hse.EntryID(fmt.Sprintf("entry-%d", m.seq))
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *Memory) EntriesForPeriod(_ context.Context, projectID hse.ProjectID, period hse.PeriodRef) ([]hse.DailyEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []hse.DailyEntry
	for _, e := range m.entries {
		if e.ProjectID == projectID && !e.Deleted && period.Contains(e.EntryDate) {
			result = append(result, e)
		}
	}
	return result, nil
}

// =============================================================================
// SOURCE COLLECTIONS
// =============================================================================

func (m *Memory) AddTraining(_ context.Context, t hse.Training) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainings = append(m.trainings, t)
	return nil
}

func (m *Memory) AddAwarenessSession(_ context.Context, s hse.AwarenessSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awareness = append(m.awareness, s)
	return nil
}

func (m *Memory) AddWorkPermit(_ context.Context, p hse.WorkPermit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permits = append(m.permits, p)
	return nil
}

func (m *Memory) TrainingTotals(_ context.Context, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := hse.SourceTotals{Hours: decimal.Zero}
	for _, t := range m.trainings {
		if t.ProjectID == projectID && t.Period.Number == period.Number && t.Period.Year == period.Year {
			totals.Count++
			totals.Hours = totals.Hours.Add(t.Hours)
		}
	}
	return totals, nil
}

func (m *Memory) AwarenessTotals(_ context.Context, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := hse.SourceTotals{Hours: decimal.Zero}
	for _, s := range m.awareness {
		if s.ProjectID == projectID && s.Period.Number == period.Number && s.Period.Year == period.Year {
			totals.Count++
			totals.Hours = totals.Hours.Add(s.Hours)
		}
	}
	return totals, nil
}

func (m *Memory) PermitTotals(_ context.Context, projectID hse.ProjectID, period hse.PeriodRef) (hse.SourceTotals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := hse.SourceTotals{Hours: decimal.Zero}
	for _, p := range m.permits {
		if p.ProjectID == projectID && p.Period.Number == period.Number && p.Period.Year == period.Year {
			totals.Count++
		}
	}
	return totals, nil
}

// =============================================================================
// PERIOD REPORTS
// =============================================================================

func (m *Memory) FindReport(_ context.Context, projectID hse.ProjectID, periodNumber, periodYear int) (*hse.PeriodReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.reports {
		if r.ProjectID == projectID &&
			r.Period.Number == periodNumber &&
			r.Period.Year == periodYear &&
			!r.Deleted {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetReport(_ context.Context, id hse.ReportID) (*hse.PeriodReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok || r.Deleted {
		return nil, hse.ErrReportNotFound
	}
	found := r
	return &found, nil
}

// SaveReport inserts or updates. Inserting into an occupied period slot
// fails with DuplicatePeriodError, mirroring the SQL unique constraint.
func (m *Memory) SaveReport(_ context.Context, report *hse.PeriodReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reports {
		if existing.ID != report.ID &&
			!existing.Deleted && !report.Deleted &&
			existing.ProjectID == report.ProjectID &&
			existing.Period.Number == report.Period.Number &&
			existing.Period.Year == report.Period.Year {
			return &hse.DuplicatePeriodError{
				ProjectID:    report.ProjectID,
				PeriodNumber: report.Period.Number,
				PeriodYear:   report.Period.Year,
				ExistingID:   existing.ID,
			}
		}
	}
	m.reports[report.ID] = *report
	return nil
}

func (m *Memory) SoftDeleteReport(_ context.Context, id hse.ReportID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reports[id]
	if !ok {
		return hse.ErrReportNotFound
	}
	r.Deleted = true
	m.reports[id] = r
	return nil
}

func (m *Memory) ReportsForMonth(_ context.Context, year int, month int) ([]hse.PeriodReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []hse.PeriodReport
	for _, r := range m.reports {
		if r.Deleted {
			continue
		}
		if r.Period.Start.Year() == year && int(r.Period.Start.Month()) == month {
			result = append(result, r)
		}
	}
	return result, nil
}
