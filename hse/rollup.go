/*
rollup.go - Daily entry reduction into one period aggregate

PURPOSE:
  Reduces the set of daily entries for one (project, period) into a single
  aggregate record, one reduced value per field according to the FieldRule
  table. Read-only and side-effect-free; safe to run in parallel across
  different (project, period) keys.

ZERO-ENTRY GUARANTEE:
  With no entries, SUM and MAX fields yield 0 and AVERAGE/LATEST fields
  yield null. "No data" and "measured zero" stay distinguishable.

SEE ALSO:
  - reduction.go: The strategy table and reducers
  - draft.go: Overlays cross-source counts on top of this output
*/
package hse

import "sort"

// Rollup reduces daily entries into one aggregate using the given rules.
// Soft-deleted entries are excluded. Entries are ordered by entry date so
// LATEST fields pick the most recent non-null measurement.
func Rollup(entries []DailyEntry, rules []FieldRule) Aggregate {
	live := make([]DailyEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Deleted {
			live = append(live, e)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].EntryDate.Before(live[j].EntryDate)
	})

	agg := make(Aggregate, len(rules))
	values := make([]Value, len(live))
	for _, rule := range rules {
		for i, e := range live {
			values[i] = e.Value(rule.Field)
		}
		agg[rule.Field] = ReduceValues(rule.Strategy, values)
	}
	return agg
}
