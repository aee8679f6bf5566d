/*
rollup.go - Monthly aggregation against a daily target

PURPOSE:
  Rolls the canonical date->hours map up into the monthly figures shown on
  the dashboard: total hours, target for the month, completion percentage,
  and remaining hours. Also produces the per-day view used by the calendar
  cells (hours, overtime flag, per-day percent).

DERIVED VALUES ONLY:
  A MonthlyRollup has no lifecycle of its own. It is recomputed whenever the
  daily map, the days-in-month, or the daily target changes, and is held
  only as a rendering cache.

SEE ALSO:
  - summary.go: Produces the DailyHoursMap input
  - salary.go: Consumes TotalHours
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DefaultDailyTarget is the expected work hours per calendar day.
var DefaultDailyTarget = decimal.NewFromInt(8)

// =============================================================================
// MONTHLY ROLLUP
// =============================================================================

// MonthlyRollup aggregates a month of daily hours against a target.
type MonthlyRollup struct {
	TotalHours        decimal.Decimal
	TargetHours       decimal.Decimal
	CompletionPercent int
	RemainingHours    decimal.Decimal
}

// Rollup computes the monthly aggregate for the given daily map.
//
//   - TotalHours is the sum of all recorded days.
//   - TargetHours is daysInMonth * dailyTarget.
//   - CompletionPercent is round(total/target*100) clamped to [0, 100],
//     or 0 when the target is zero.
//   - RemainingHours is max(0, target - total), rounded to 2 places.
func Rollup(daily DailyHoursMap, daysInMonth int, dailyTarget decimal.Decimal) MonthlyRollup {
	total := daily.Total()
	target := dailyTarget.Mul(decimal.NewFromInt(int64(daysInMonth)))

	percent := 0
	if !target.IsZero() {
		percent = clampPercent(total.Div(target).Mul(hundred).Round(0))
	}

	remaining := target.Sub(total).Round(2)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return MonthlyRollup{
		TotalHours:        total,
		TargetHours:       target,
		CompletionPercent: percent,
		RemainingHours:    remaining,
	}
}

// =============================================================================
// PER-DAY VIEW
// =============================================================================

// DayView is the calendar-cell rendering state for one day.
type DayView struct {
	Date       string
	Hours      decimal.Decimal
	Overtime   bool
	DayPercent int
}

// DayViewFor derives the per-day view for a date key. A day absent from the
// map counts as zero hours; overtime means hours strictly above the target.
func DayViewFor(daily DailyHoursMap, date string, dailyTarget decimal.Decimal) DayView {
	hours := daily.Hours(date)

	percent := 0
	if !dailyTarget.IsZero() {
		percent = clampPercent(hours.Div(dailyTarget).Mul(hundred).Round(0))
	}

	return DayView{
		Date:       date,
		Hours:      hours,
		Overtime:   hours.GreaterThan(dailyTarget),
		DayPercent: percent,
	}
}

func clampPercent(d decimal.Decimal) int {
	p := int(d.IntPart())
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateKey formats a calendar day as the ISO YYYY-MM-DD map key.
func DateKey(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
