/*
rates.go - TF/TG safety rate computation

PURPOSE:
  Pure computation of the two derived safety indices:
    TF (frequency rate) = accidents per million hours worked
    TG (severity rate)  = lost workdays per thousand hours worked

DIVISION BY ZERO:
  Zero (or negative) hours worked is a defined input, not an error: both
  rates are zero. A site with no recorded hours has no meaningful rate,
  and the reports must still render.

ROUNDING:
  TF is rounded to 2 decimal places, TG to 4, matching how the rates are
  published on the weekly reports.

SEE ALSO:
  - lifecycle.go: Recomputes rates on every edit touching the inputs
  - draft.go: Computes initial rates when building a draft
*/
package hse

import "github.com/shopspring/decimal"

// Rates holds the derived safety indices for a report.
type Rates struct {
	TF decimal.Decimal // accidents * 1e6 / hours worked, 2 dp
	TG decimal.Decimal // lost workdays * 1e3 / hours worked, 4 dp
}

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// ComputeRates derives TF and TG from the three inputs. Side-effect-free.
func ComputeRates(accidents, lostWorkdays int, hoursWorked decimal.Decimal) Rates {
	if !hoursWorked.IsPositive() {
		return Rates{TF: decimal.Zero, TG: decimal.Zero}
	}
	return Rates{
		TF: decimal.NewFromInt(int64(accidents)).Mul(million).Div(hoursWorked).Round(2),
		TG: decimal.NewFromInt(int64(lostWorkdays)).Mul(thousand).Div(hoursWorked).Round(4),
	}
}
