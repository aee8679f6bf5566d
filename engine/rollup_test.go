package engine_test

import (
	"testing"
	"time"

	"github.com/warp/timekeeping-engine/engine"
)

// =============================================================================
// MONTHLY ROLLUP
// =============================================================================

func TestRollup_SingleDay(t *testing.T) {
	// GIVEN: one 8-hour day in a 31-day month with an 8h daily target
	daily := engine.DailyHoursMap{"2024-01-01": dec("8")}

	// WHEN: rolling up
	got := engine.Rollup(daily, 31, dec("8"))

	// THEN: 8 of 248 target hours, 3% complete
	if !got.TotalHours.Equal(dec("8")) {
		t.Errorf("TotalHours = %s, want 8", got.TotalHours)
	}
	if !got.TargetHours.Equal(dec("248")) {
		t.Errorf("TargetHours = %s, want 248", got.TargetHours)
	}
	if got.CompletionPercent != 3 {
		t.Errorf("CompletionPercent = %d, want 3", got.CompletionPercent)
	}
	if !got.RemainingHours.Equal(dec("240")) {
		t.Errorf("RemainingHours = %s, want 240", got.RemainingHours)
	}
}

func TestRollup_EmptyMonth(t *testing.T) {
	got := engine.Rollup(engine.DailyHoursMap{}, 30, dec("8"))

	if !got.TotalHours.IsZero() {
		t.Errorf("TotalHours = %s, want 0", got.TotalHours)
	}
	if got.CompletionPercent != 0 {
		t.Errorf("CompletionPercent = %d, want 0", got.CompletionPercent)
	}
	if !got.RemainingHours.Equal(dec("240")) {
		t.Errorf("RemainingHours = %s, want 240.00", got.RemainingHours)
	}
}

func TestRollup_OverTarget_Clamped(t *testing.T) {
	// A month worked past its target clamps completion at 100 and
	// remaining at 0, never negative.
	daily := engine.DailyHoursMap{}
	for day := 1; day <= 28; day++ {
		daily[engine.DateKey(2024, time.February, day)] = dec("10")
	}

	got := engine.Rollup(daily, 28, dec("8"))

	if got.CompletionPercent != 100 {
		t.Errorf("CompletionPercent = %d, want 100", got.CompletionPercent)
	}
	if !got.RemainingHours.IsZero() {
		t.Errorf("RemainingHours = %s, want 0", got.RemainingHours)
	}
}

func TestRollup_ZeroTarget(t *testing.T) {
	got := engine.Rollup(engine.DailyHoursMap{"2024-01-01": dec("8")}, 31, dec("0"))

	if got.CompletionPercent != 0 {
		t.Errorf("zero target must yield 0%%, got %d", got.CompletionPercent)
	}
}

// =============================================================================
// PER-DAY VIEW
// =============================================================================

func TestDayViewFor(t *testing.T) {
	daily := engine.DailyHoursMap{
		"2024-01-01": dec("8"),
		"2024-01-02": dec("9.5"),
		"2024-01-03": dec("4"),
	}
	target := dec("8")

	cases := []struct {
		date     string
		hours    string
		overtime bool
		percent  int
	}{
		{"2024-01-01", "8", false, 100},  // exactly on target is not overtime
		{"2024-01-02", "9.5", true, 100}, // above target, percent capped
		{"2024-01-03", "4", false, 50},
		{"2024-01-04", "0", false, 0}, // absent day counts as zero
	}

	for _, tc := range cases {
		got := engine.DayViewFor(daily, tc.date, target)
		if !got.Hours.Equal(dec(tc.hours)) {
			t.Errorf("%s: Hours = %s, want %s", tc.date, got.Hours, tc.hours)
		}
		if got.Overtime != tc.overtime {
			t.Errorf("%s: Overtime = %v, want %v", tc.date, got.Overtime, tc.overtime)
		}
		if got.DayPercent != tc.percent {
			t.Errorf("%s: DayPercent = %d, want %d", tc.date, got.DayPercent, tc.percent)
		}
	}
}

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2025, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tc := range cases {
		if got := engine.DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestDateKey(t *testing.T) {
	if got := engine.DateKey(2024, time.March, 7); got != "2024-03-07" {
		t.Errorf("DateKey = %q, want 2024-03-07", got)
	}
}
