/*
reduction.go - Declarative per-field reduction strategies

PURPOSE:
  Each KPI field declares how many fine-grained values collapse into one
  coarse value: SUM for event counts, MAX for peak headcount, AVERAGE for
  compliance percentages, LATEST for spot measurements. The mapping is data
  (a FieldRule table), consumed uniformly by both the daily rollup and the
  monthly pole rollup, so the two aggregators cannot drift apart.

NULL HANDLING:
  - SUM / MAX over zero present values yield 0 (a valid measurement).
  - AVERAGE excludes null values from numerator and denominator; with no
    present values the result is null, distinguishing "no data" from
    "measured zero".
  - LATEST takes the most recent non-null value; null when none exists.

EXAMPLE:
  rules := hse.DefaultFieldRules()
  agg := hse.Rollup(entries, rules)
  agg[hse.FieldWorkforce]  // peak daily headcount for the period

SEE ALSO:
  - rollup.go: Applies rules to daily entries
  - monthly.go: Applies the same rules to period reports
  - factory/rules.go: JSON configuration for per-deployment overrides
*/
package hse

import "github.com/shopspring/decimal"

// =============================================================================
// REDUCTION STRATEGY
// =============================================================================

type ReductionStrategy string

const (
	ReduceSum     ReductionStrategy = "sum"
	ReduceMax     ReductionStrategy = "max"
	ReduceAverage ReductionStrategy = "average"
	ReduceLatest  ReductionStrategy = "latest"
)

// FieldRule binds one field to its reduction strategy.
type FieldRule struct {
	Field    Field
	Strategy ReductionStrategy
}

// DefaultFieldRules returns the standard reduction table for the daily
// rollup. Auto-populated fields (training hours, work permits) are absent:
// they come from source tables, not from entry reduction.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{FieldWorkforce, ReduceMax}, // peak daily headcount, not cumulative
		{FieldInductions, ReduceSum},
		{FieldFindings, ReduceSum},
		{FieldFindingsClosed, ReduceSum},
		{FieldNearMisses, ReduceSum},
		{FieldFirstAidCases, ReduceSum},
		{FieldAccidents, ReduceSum},
		{FieldLostWorkdays, ReduceSum},
		{FieldHoursWorked, ReduceSum},
		{FieldInspections, ReduceSum},
		{FieldDisciplinaryActions, ReduceSum},
		{FieldWaterConsumption, ReduceSum},
		{FieldElectricityConsumption, ReduceSum},
		{FieldHSECompliance, ReduceAverage},
		{FieldMedicalCompliance, ReduceAverage},
		{FieldNoiseLevel, ReduceLatest},
	}
}

// MonthlyFieldRules returns the reduction table for the pole-level monthly
// rollup over report-level data. Same strategies per field, plus the
// auto-populated report fields which reduce by SUM across reports.
func MonthlyFieldRules() []FieldRule {
	rules := DefaultFieldRules()
	return append(rules,
		FieldRule{FieldTrainingHours, ReduceSum},
		FieldRule{FieldWorkPermits, ReduceSum},
	)
}

// =============================================================================
// REDUCERS
// =============================================================================

// ReduceValues collapses a chronologically ordered series of values using
// the given strategy. Ordering only matters for LATEST.
func ReduceValues(strategy ReductionStrategy, values []Value) Value {
	switch strategy {
	case ReduceMax:
		return reduceMax(values)
	case ReduceAverage:
		return reduceAverage(values)
	case ReduceLatest:
		return reduceLatest(values)
	default:
		return reduceSum(values)
	}
}

func reduceSum(values []Value) Value {
	sum := decimal.Zero
	for _, v := range values {
		if v.Valid {
			sum = sum.Add(v.Dec)
		}
	}
	return ValueOf(sum)
}

func reduceMax(values []Value) Value {
	max := decimal.Zero
	for _, v := range values {
		if v.Valid && v.Dec.GreaterThan(max) {
			max = v.Dec
		}
	}
	return ValueOf(max)
}

func reduceAverage(values []Value) Value {
	sum := decimal.Zero
	count := 0
	for _, v := range values {
		if v.Valid {
			sum = sum.Add(v.Dec)
			count++
		}
	}
	if count == 0 {
		return Null()
	}
	return ValueOf(sum.Div(decimal.NewFromInt(int64(count))).Round(2))
}

func reduceLatest(values []Value) Value {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i].Valid {
			return values[i]
		}
	}
	return Null()
}
