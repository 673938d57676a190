/*
period.go - Calendar date to reporting period resolution

PURPOSE:
  Maps a calendar date to its (week number, week year) pair and computes the
  7-day [Start, End] window for a period. Reporting weeks start on Saturday
  per the fixed business convention, not on Monday as in ISO 8601.

WEEK OWNERSHIP RULE:
  A week belongs to the year that contains its START date. Dates in the
  trailing days of December whose week starts in the same December resolve
  to week 52 of that year; dates in early January whose week started in the
  previous December resolve to the previous week year.

WEEK 53 FOLD:
  Years with 53 Saturdays would produce a week 53. The configured week range
  is 1-52, so week 53 folds into week 52 of the same year: two 7-day windows
  share the week-52 label, and PeriodOf(52, year) returns the canonical
  (first) window. This convention is covered by explicit tests.

EXAMPLE:
  cfg := hse.DefaultWeekConfig()
  ref := cfg.Resolve(hse.NewDate(2026, time.March, 4))
  // ref.Number, ref.Year, ref.Start (a Saturday), ref.End (the Friday after)

SEE ALSO:
  - rollup.go: Aggregates entries inside one resolved period
  - lifecycle.go: Requires a resolved period before submission
*/
package hse

import "time"

// =============================================================================
// PERIOD REFERENCE
// =============================================================================

// PeriodRef identifies one reporting week and its calendar bounds.
// Start and End are inclusive and span exactly 7 days.
type PeriodRef struct {
	Number int
	Year   int
	Start  Date
	End    Date
}

// Contains returns true if the date falls inside [Start, End].
func (p PeriodRef) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Resolved reports whether the reference carries a usable period: a week
// number in range and non-zero bounds. Submission requires this.
func (p PeriodRef) Resolved() bool {
	return p.Number >= 1 && !p.Start.IsZero() && !p.End.IsZero()
}

// Key returns a stable string key for maps and idempotency.
func (p PeriodRef) Key() string { return p.Start.String() }

// =============================================================================
// WEEK CONFIG - Fixed business convention
// =============================================================================

// WeekConfig defines how calendar dates map to reporting weeks.
type WeekConfig struct {
	// StartDay is the weekday each reporting week begins on.
	StartDay time.Weekday

	// MaxWeek caps the week number; overflow folds into this week.
	MaxWeek int
}

// DefaultWeekConfig returns the business convention: Saturday-start weeks,
// numbered 1-52.
func DefaultWeekConfig() WeekConfig {
	return WeekConfig{StartDay: time.Saturday, MaxWeek: 52}
}

// Resolve maps a calendar date to its reporting period.
func (wc WeekConfig) Resolve(d Date) PeriodRef {
	start := wc.weekStart(d)
	year := start.Year()

	number := DaysBetween(wc.firstWeekStart(year), start)/7 + 1
	if number > wc.MaxWeek {
		number = wc.MaxWeek
	}

	return PeriodRef{
		Number: number,
		Year:   year,
		Start:  start,
		End:    start.AddDays(6),
	}
}

// PeriodOf returns the canonical window for a known (week number, year).
// For the fold week (MaxWeek in a 53-week year) this is the first of the
// two windows sharing the label.
func (wc WeekConfig) PeriodOf(number, year int) (PeriodRef, error) {
	if number < 1 || number > wc.MaxWeek {
		return PeriodRef{}, ErrInvalidPeriod
	}
	start := wc.firstWeekStart(year).AddDays((number - 1) * 7)
	return PeriodRef{
		Number: number,
		Year:   year,
		Start:  start,
		End:    start.AddDays(6),
	}, nil
}

// weekStart rewinds the date to the most recent StartDay (possibly the
// date itself).
func (wc WeekConfig) weekStart(d Date) Date {
	offset := int(d.Weekday()) - int(wc.StartDay)
	if offset < 0 {
		offset += 7
	}
	return d.AddDays(-offset)
}

// firstWeekStart returns the start of week 1: the first StartDay on or
// after January 1. The week containing January 1 belongs to the previous
// year when it starts there.
func (wc WeekConfig) firstWeekStart(year int) Date {
	jan1 := NewDate(year, time.January, 1)
	offset := int(wc.StartDay) - int(jan1.Weekday())
	if offset < 0 {
		offset += 7
	}
	return jan1.AddDays(offset)
}
