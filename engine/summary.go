/*
summary.go - Monthly-summary reconciliation across two backend shapes

PURPOSE:
  The monthly-summary endpoint has shipped in two incompatible shapes:

    Variant A (list):  { "daily": [ {"date"|"workDate": "...", "totalHours": n}, ... ] }
    Variant B (map):   { "dailyHours": { "YYYY-MM-DD": n, ... } }

  NormalizeMonthlySummary folds either shape into one canonical date->hours
  map so the rest of the engine never sees the difference.

SHAPE TOLERANCE:
  Normalization is total: it never fails. Entries without a usable date key
  are skipped, unknown fields are ignored, and an unrecognizable body yields
  an empty map. Degrading to a partial map is the contract, not a bug.

PRECEDENCE:
  When a response carries both fields, "daily" wins because it is checked
  first. This ordering is a compatibility seam with the older backend and
  must be preserved.

SEE ALSO:
  - rollup.go: Consumes the canonical map
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// RAW SHAPES - Exactly what the backend may send
// =============================================================================

// DailyEntry is one element of the variant-A "daily" list. Older backends
// populate Date; newer ones populate WorkDate.
type DailyEntry struct {
	Date       string          `json:"date,omitempty"`
	WorkDate   string          `json:"workDate,omitempty"`
	TotalHours decimal.Decimal `json:"totalHours"`
}

// MonthlySummaryRaw is the untrusted union of both monthly-summary shapes.
type MonthlySummaryRaw struct {
	Daily      []DailyEntry               `json:"daily,omitempty"`
	DailyHours map[string]decimal.Decimal `json:"dailyHours,omitempty"`
	TotalHours decimal.Decimal            `json:"totalHours"`
	Year       int                        `json:"year,omitempty"`
	Month      int                        `json:"month,omitempty"`
}

// =============================================================================
// CANONICAL SHAPE
// =============================================================================

// DailyHoursMap maps ISO calendar dates (YYYY-MM-DD) to total hours worked
// that day. A key is present only for days with recorded hours; an absent
// key means 0.
type DailyHoursMap map[string]decimal.Decimal

// Hours returns the recorded hours for a date, or zero when absent.
func (m DailyHoursMap) Hours(date string) decimal.Decimal {
	if h, ok := m[date]; ok {
		return h
	}
	return decimal.Zero
}

// Total sums all recorded hours in the map.
func (m DailyHoursMap) Total() decimal.Decimal {
	total := decimal.Zero
	for _, h := range m {
		total = total.Add(h)
	}
	return total
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeMonthlySummary folds either backend shape into a DailyHoursMap.
//
// Variant A ("daily" list, checked first): each entry keys on date, falling
// back to workDate; entries with neither are skipped. Later duplicates
// overwrite earlier ones in input order.
//
// Variant B ("dailyHours" map): entries are copied as-is.
//
// A response with neither field yields an empty map. Never fails.
func NormalizeMonthlySummary(raw MonthlySummaryRaw) DailyHoursMap {
	out := make(DailyHoursMap)
	switch {
	case raw.Daily != nil:
		for _, entry := range raw.Daily {
			key := entry.Date
			if key == "" {
				key = entry.WorkDate
			}
			if key == "" {
				continue
			}
			out[key] = entry.TotalHours
		}
	case raw.DailyHours != nil:
		for date, hours := range raw.DailyHours {
			out[date] = hours
		}
	}
	return out
}
