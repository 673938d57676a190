/*
monthly.go - Pole-level monthly rollup for dashboards

PURPOSE:
  Second-order aggregation: groups already-finalized (submitted/approved)
  weekly reports by organizational pole and month, reducing each indicator
  with the same FieldRule table as the daily rollup, but over report-level
  data. Adds a closure-rate percentage for deviation tracking.

MONTH MEMBERSHIP:
  A report belongs to the month containing its period START date. Weeks
  straddling a month boundary count once, in the month they begin.

EMPTY POLES:
  Poles whose projects have zero reports in the target month still emit a
  row with zero/null values. Dashboards render every pole, not just the
  active ones.

IDEMPOTENCE:
  Read-only and side-effect-free: identical inputs with no intervening
  writes yield identical output. Rows are ordered by pole name.

SEE ALSO:
  - reduction.go: Shared strategy table
  - store.go: ReportStore and ProjectPoleDirectory collaborators
*/
package hse

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyFilter narrows the aggregation scope.
type MonthlyFilter struct {
	// ProjectID restricts to one project when non-empty.
	ProjectID ProjectID
}

// MonthlyAggregator projects finalized weekly reports onto the monthly
// dashboard read model.
type MonthlyAggregator struct {
	Reports   ReportStore
	Directory ProjectPoleDirectory

	// Rules defaults to MonthlyFieldRules when nil.
	Rules []FieldRule
}

// Aggregate reduces all finalized reports for the month into one row per
// pole. Tolerates poles with no reports by emitting zero/null rows.
func (a *MonthlyAggregator) Aggregate(ctx context.Context, year int, month time.Month, filter MonthlyFilter) ([]MonthlyAggregate, error) {
	projects, err := a.Directory.Projects(ctx)
	if err != nil {
		return nil, err
	}

	// Pole -> member projects, honoring the project filter.
	poleMembers := make(map[Pole][]ProjectID)
	projectPole := make(map[ProjectID]Pole, len(projects))
	for _, p := range projects {
		if filter.ProjectID != "" && p.ID != filter.ProjectID {
			continue
		}
		poleMembers[p.Pole] = append(poleMembers[p.Pole], p.ID)
		projectPole[p.ID] = p.Pole
	}

	reports, err := a.Reports.ReportsForMonth(ctx, year, int(month))
	if err != nil {
		return nil, err
	}

	byPole := make(map[Pole][]PeriodReport)
	for _, r := range reports {
		if !r.Finalized() {
			continue
		}
		pole, ok := projectPole[r.ProjectID]
		if !ok {
			continue // filtered out or unknown project
		}
		byPole[pole] = append(byPole[pole], r)
	}

	rules := a.Rules
	if rules == nil {
		rules = MonthlyFieldRules()
	}

	rows := make([]MonthlyAggregate, 0, len(poleMembers))
	for pole, members := range poleMembers {
		rows = append(rows, a.reducePole(pole, year, month, members, byPole[pole], rules))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Pole < rows[j].Pole })
	return rows, nil
}

func (a *MonthlyAggregator) reducePole(pole Pole, year int, month time.Month, members []ProjectID, reports []PeriodReport, rules []FieldRule) MonthlyAggregate {
	// Order by period start so LATEST fields pick the newest report.
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Period.Start.Before(reports[j].Period.Start)
	})

	agg := make(Aggregate, len(rules))
	values := make([]Value, len(reports))
	for _, rule := range rules {
		for i, r := range reports {
			values[i] = r.Value(rule.Field)
		}
		agg[rule.Field] = ReduceValues(rule.Strategy, values)
	}

	return MonthlyAggregate{
		Pole:         pole,
		Month:        month,
		Year:         year,
		Values:       agg,
		ClosureRate:  closureRate(agg),
		ProjectCount: len(members),
		ReportCount:  len(reports),
	}
}

// closureRate computes closed findings / raised findings * 100, zero when
// nothing was raised.
func closureRate(agg Aggregate) decimal.Decimal {
	total := agg[FieldFindings]
	closed := agg[FieldFindingsClosed]
	if !total.Valid || total.Dec.IsZero() {
		return decimal.Zero
	}
	return closed.Dec.Div(total.Dec).Mul(decimal.NewFromInt(100)).Round(2)
}
