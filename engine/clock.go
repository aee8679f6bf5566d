/*
Package engine provides the core timekeeping computation engine.

PURPOSE:
  This package contains the deterministic logic behind the staff timekeeping
  dashboard: turning a pair of wall-clock times into a duration, reconciling
  the two monthly-summary shapes the backend may return, rolling daily hours
  up into monthly totals, and deriving salary figures.

KEY CONCEPTS IN THIS FILE (clock.go):
  - TimeOfDay: A wall-clock HH:mm value, held as minutes since midnight
  - EndOfDay: The "24:00" sentinel marking the exclusive midnight boundary
  - ComputeDuration: Interval length in hours, overnight-aware
  - EndTimeForDuration: The inverse - project an end time from a duration

DESIGN PRINCIPLES:
  1. Purity: Every function here is a pure function of its inputs
  2. Precision: Uses decimal.Decimal for hour values, never float accumulation
  3. Confinement: The "24:00" sentinel exists only at this boundary and in the
     validator; it never reaches persisted work logs

USAGE:
  start, _ := engine.ParseTimeOfDay("09:00")
  end, _   := engine.ParseTimeOfDay("18:00")
  hours    := engine.ComputeDuration(start, end)   // 9.00

SEE ALSO:
  - validate.go: Input validation before a work log is submitted
  - rollup.go: Monthly aggregation over daily totals
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIME OF DAY - Wall-clock value, minutes since midnight
// =============================================================================

// TimeOfDay is a wall-clock time in 24-hour HH:mm form, stored as minutes
// since midnight. The value 1440 is the EndOfDay sentinel ("24:00"), which is
// distinct from midnight ("00:00", value 0).
type TimeOfDay struct {
	minutes int
}

// EndOfDay is the exclusive midnight boundary, rendered as "24:00".
var EndOfDay = TimeOfDay{minutes: minutesPerDay}

const minutesPerDay = 1440

var sixty = decimal.NewFromInt(60)

// MustParseDecimal parses a decimal string, falling back to zero on failure.
// For values the system itself wrote (stored durations, amounts).
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NewTimeOfDay builds a TimeOfDay from hour and minute components.
// Hour 24 with minute 0 yields the EndOfDay sentinel.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour == 24 && minute == 0 {
		return EndOfDay, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay parses a wall-clock string. Accepted forms are "HH:mm" and
// "H:mm" (the UI emits two-digit hours, but single-digit input is tolerated),
// plus the "24:00" sentinel. Anything else fails with ErrInvalidTime.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, ok := splitClock(strings.TrimSpace(s))
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	tod, err := NewTimeOfDay(h, m)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return tod, nil
}

func splitClock(s string) (hour, minute int, ok bool) {
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// Minutes returns minutes since midnight (1440 for EndOfDay).
func (t TimeOfDay) Minutes() int { return t.minutes }

// Hour returns the hour component (24 for EndOfDay).
func (t TimeOfDay) Hour() int { return t.minutes / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

// IsEndOfDay reports whether this is the "24:00" sentinel.
func (t TimeOfDay) IsEndOfDay() bool { return t.minutes == minutesPerDay }

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }

// String renders the canonical two-digit "HH:mm" form ("24:00" for EndOfDay).
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// =============================================================================
// WORK INTERVAL - One recorded session on a calendar date
// =============================================================================

// WorkInterval is a single start/end pair recorded for one calendar date.
type WorkInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// DurationHours computes the interval length. See ComputeDuration.
func (w WorkInterval) DurationHours() decimal.Decimal {
	return ComputeDuration(w.Start, w.End)
}

// =============================================================================
// DURATION ARITHMETIC
// =============================================================================

// ComputeDuration returns the length of the interval [start, end] in hours,
// rounded to 2 decimal places.
//
// Rules:
//   - "24:00" as end means minute 1440 of the same day, not the next day.
//   - An end strictly before start means the interval crosses midnight; one
//     day is added to end before differencing. Only a single crossing is
//     applied, so the result never exceeds 24.00.
//   - Equal start and end yields 0.00, not an error.
func ComputeDuration(start, end TimeOfDay) decimal.Decimal {
	endMin := end.minutes
	if !end.IsEndOfDay() && endMin < start.minutes {
		endMin += minutesPerDay
	}
	mins := endMin - start.minutes
	if mins < 0 {
		mins = 0
	}
	return decimal.NewFromInt(int64(mins)).Div(sixty).Round(2)
}

// EndTimeForDuration projects the end time that is hours after start.
// A result landing exactly on midnight returns the "24:00" sentinel rather
// than wrapping to "00:00"; any later wrap is reduced modulo 24h.
func EndTimeForDuration(start TimeOfDay, hours decimal.Decimal) TimeOfDay {
	add := int(hours.Mul(sixty).Round(0).IntPart())
	total := start.minutes + add
	if total > 0 && total%minutesPerDay == 0 {
		return EndOfDay
	}
	return TimeOfDay{minutes: ((total % minutesPerDay) + minutesPerDay) % minutesPerDay}
}
