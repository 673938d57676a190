package hse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// WEEKLY PERIOD RESOLUTION TESTS
// =============================================================================

func TestResolve_SaturdayStart(t *testing.T) {
	wc := hse.DefaultWeekConfig()

	// GIVEN a Saturday
	sat := hse.NewDate(2026, time.June, 6)

	// WHEN resolved
	p := wc.Resolve(sat)

	// THEN the week starts on that Saturday and ends the following Friday
	if !p.Start.Equal(sat) {
		t.Errorf("expected start %s, got %s", sat, p.Start)
	}
	if !p.End.Equal(hse.NewDate(2026, time.June, 12)) {
		t.Errorf("expected end 2026-06-12, got %s", p.End)
	}
	if p.Number != 23 || p.Year != 2026 {
		t.Errorf("expected week 23/2026, got %d/%d", p.Number, p.Year)
	}
}

func TestResolve_MidWeekMapsToSameWindow(t *testing.T) {
	wc := hse.DefaultWeekConfig()

	sat := wc.Resolve(hse.NewDate(2026, time.June, 6))

	// Every day of the window resolves to the identical period
	for i := 0; i < 7; i++ {
		d := hse.NewDate(2026, time.June, 6).AddDays(i)
		p := wc.Resolve(d)
		if !p.Start.Equal(sat.Start) || p.Number != sat.Number || p.Year != sat.Year {
			t.Errorf("day %s resolved to %d/%d starting %s, want %d/%d starting %s",
				d, p.Number, p.Year, p.Start, sat.Number, sat.Year, sat.Start)
		}
	}
}

func TestResolve_YearBoundary(t *testing.T) {
	wc := hse.DefaultWeekConfig()

	// GIVEN January 1st 2026 (a Thursday)
	// WHEN resolved
	p := wc.Resolve(hse.NewDate(2026, time.January, 1))

	// THEN the week belongs to the year containing its Saturday start:
	// the most recent Saturday is 2025-12-27, so week 52 of 2025
	if !p.Start.Equal(hse.NewDate(2025, time.December, 27)) {
		t.Errorf("expected start 2025-12-27, got %s", p.Start)
	}
	if p.Number != 52 || p.Year != 2025 {
		t.Errorf("expected week 52/2025, got %d/%d", p.Number, p.Year)
	}
}

func TestResolve_FiftyThirdWeekFoldsIntoLast(t *testing.T) {
	wc := hse.DefaultWeekConfig()

	// GIVEN the 53rd Saturday of 2022 (Jan 1 and Dec 31 are both Saturdays)
	p := wc.Resolve(hse.NewDate(2022, time.December, 31))

	// THEN the number is capped at the configured maximum
	if p.Number != 52 || p.Year != 2022 {
		t.Errorf("expected week 52/2022, got %d/%d", p.Number, p.Year)
	}
}

func TestPeriodOf_RoundTrip(t *testing.T) {
	wc := hse.DefaultWeekConfig()

	p, err := wc.PeriodOf(23, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Start.Equal(hse.NewDate(2026, time.June, 6)) {
		t.Errorf("expected start 2026-06-06, got %s", p.Start)
	}

	// Resolving the canonical start gives back the same period
	resolved := wc.Resolve(p.Start)
	if resolved.Number != 23 || resolved.Year != 2026 {
		t.Errorf("round trip gave %d/%d", resolved.Number, resolved.Year)
	}
}

func TestPeriodOf_OutOfRange(t *testing.T) {
	wc := hse.DefaultWeekConfig()

	for _, num := range []int{0, -1, 53, 99} {
		if _, err := wc.PeriodOf(num, 2026); !errors.Is(err, hse.ErrInvalidPeriod) {
			t.Errorf("PeriodOf(%d): expected ErrInvalidPeriod, got %v", num, err)
		}
	}
}

func TestPeriodRef_Contains(t *testing.T) {
	wc := hse.DefaultWeekConfig()
	p := wc.Resolve(hse.NewDate(2026, time.June, 6))

	if !p.Contains(p.Start) {
		t.Error("period should contain its start")
	}
	if !p.Contains(p.End) {
		t.Error("period should contain its end")
	}
	if p.Contains(p.End.AddDays(1)) {
		t.Error("period should not contain the day after its end")
	}
	if p.Contains(p.Start.AddDays(-1)) {
		t.Error("period should not contain the day before its start")
	}
}
