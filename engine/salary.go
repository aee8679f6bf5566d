/*
salary.go - Salary derivation from monthly hours

PURPOSE:
  Derives gross and net salary from total hours, an hourly rate, and a
  pre-paid advance. The backend owns the authoritative calculation; this
  local computation doubles as a live preview and as the fallback when the
  backend salary endpoint is unreachable.

RESULT TAGGING:
  Callers that fall back must be able to tell which path produced the
  figures, so SalaryResult carries an explicit Source tag instead of the
  two paths being indistinguishable. Tests and UI badges key off it.

NO CLAMPING:
  Net salary may be negative. A negative net means the advance exceeds the
  earned amount for the month and must be surfaced as-is.

SEE ALSO:
  - rollup.go: Source of TotalHours
  - client/: Chooses authoritative vs local estimate
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// SALARY FIGURES
// =============================================================================

// SalaryFigures holds the derived salary values for one staff/month.
type SalaryFigures struct {
	HourlyRate    decimal.Decimal
	AdvanceAmount decimal.Decimal
	GrossSalary   decimal.Decimal
	NetSalary     decimal.Decimal
}

// SalarySource identifies which path produced a salary result.
type SalarySource string

const (
	// SourceAuthoritative means the backend salary endpoint answered.
	SourceAuthoritative SalarySource = "authoritative"
	// SourceLocalEstimate means the figures were computed locally from the
	// cached monthly total after the backend call failed.
	SourceLocalEstimate SalarySource = "local_estimate"
)

// SalaryResult pairs salary figures with the path that produced them.
type SalaryResult struct {
	Figures SalaryFigures
	Source  SalarySource
}

// =============================================================================
// CALCULATION
// =============================================================================

// CalculateSalary derives gross and net salary:
//
//	gross = round(totalHours * hourlyRate, 2)
//	net   = round(gross - advanceAmount, 2)
//
// Net may be negative; it is not clamped.
func CalculateSalary(totalHours, hourlyRate, advanceAmount decimal.Decimal) SalaryFigures {
	gross := totalHours.Mul(hourlyRate).Round(2)
	return SalaryFigures{
		HourlyRate:    hourlyRate,
		AdvanceAmount: advanceAmount,
		GrossSalary:   gross,
		NetSalary:     gross.Sub(advanceAmount).Round(2),
	}
}
