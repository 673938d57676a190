package hse_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/hse-engine/hse"
)

// =============================================================================
// SAFETY RATE TESTS
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeRates_Frequency(t *testing.T) {
	// GIVEN 2 accidents over 40000 hours worked
	// WHEN rates are computed
	rates := hse.ComputeRates(2, 0, dec("40000"))

	// THEN TF = 2 * 1,000,000 / 40,000 = 50
	if !rates.TF.Equal(dec("50")) {
		t.Errorf("expected TF 50, got %s", rates.TF)
	}
}

func TestComputeRates_Gravity(t *testing.T) {
	// GIVEN 12 lost workdays over 40000 hours
	rates := hse.ComputeRates(0, 12, dec("40000"))

	// THEN TG = 12 * 1,000 / 40,000 = 0.3
	if !rates.TG.Equal(dec("0.3")) {
		t.Errorf("expected TG 0.3, got %s", rates.TG)
	}
}

func TestComputeRates_Rounding(t *testing.T) {
	// GIVEN inputs that do not divide evenly
	rates := hse.ComputeRates(1, 1, dec("30000"))

	// THEN TF rounds to 2 decimal places: 1e6/30000 = 33.333... -> 33.33
	if !rates.TF.Equal(dec("33.33")) {
		t.Errorf("expected TF 33.33, got %s", rates.TF)
	}
	// AND TG rounds to 4 decimal places: 1e3/30000 = 0.0333... -> 0.0333
	if !rates.TG.Equal(dec("0.0333")) {
		t.Errorf("expected TG 0.0333, got %s", rates.TG)
	}
}

func TestComputeRates_SumThenDivide(t *testing.T) {
	// GIVEN daily accident counts [1, 0, 2] and 1200 total hours
	// (summed before dividing, never averaged per day)
	accidents := 1 + 0 + 2
	rates := hse.ComputeRates(accidents, 0, dec("1200"))

	// THEN TF = 3 * 1,000,000 / 1,200 = 2500
	if !rates.TF.Equal(dec("2500")) {
		t.Errorf("expected TF 2500, got %s", rates.TF)
	}
}

func TestComputeRates_ZeroHours(t *testing.T) {
	// GIVEN zero hours worked (project idle)
	rates := hse.ComputeRates(3, 10, decimal.Zero)

	// THEN both rates are zero, not an error and not a division panic
	if !rates.TF.IsZero() || !rates.TG.IsZero() {
		t.Errorf("expected zero rates for zero hours, got TF=%s TG=%s", rates.TF, rates.TG)
	}
}

func TestComputeRates_NegativeHours(t *testing.T) {
	// GIVEN negative hours (bad data)
	rates := hse.ComputeRates(1, 1, dec("-10"))

	// THEN both rates are zero
	if !rates.TF.IsZero() || !rates.TG.IsZero() {
		t.Errorf("expected zero rates for negative hours, got TF=%s TG=%s", rates.TF, rates.TG)
	}
}

func TestComputeRates_ZeroIncidents(t *testing.T) {
	// GIVEN a clean week with hours worked
	rates := hse.ComputeRates(0, 0, dec("5000"))

	// THEN both rates are zero
	if !rates.TF.IsZero() || !rates.TG.IsZero() {
		t.Errorf("expected zero rates, got TF=%s TG=%s", rates.TF, rates.TG)
	}
}
