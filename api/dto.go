/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures of the timekeeping API. These types decouple
  the store records and engine values from the wire contract the dashboard
  front-end consumes.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

FIELD CONVENTION:
  The contract is camelCase because the consuming front-end predates this
  server. Hours are emitted as JSON numbers; money on the salary response
  is emitted as decimal strings (hourlyRate, totalAmount), mirroring the
  shapes the dashboard already parses.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/summary.go: The raw monthly-summary union these map onto
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/timekeeping-engine/engine"
	"github.com/warp/timekeeping-engine/store/sqlite"
)

// =============================================================================
// STAFF
// =============================================================================

// StaffDTO represents a staff member in API responses.
type StaffDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AdvanceAmount float64 `json:"advanceAmount"`
}

// CreateStaffRequest is the request to create a staff member.
type CreateStaffRequest struct {
	Name string `json:"name"`
}

func toStaffDTO(s *sqlite.Staff) StaffDTO {
	return StaffDTO{
		ID:            s.ID,
		Name:          s.Name,
		AdvanceAmount: s.AdvanceAmount.InexactFloat64(),
	}
}

// =============================================================================
// WORK LOGS
// =============================================================================

// WorkLogDTO represents one recorded work interval.
type WorkLogDTO struct {
	ID            string  `json:"id"`
	StaffID       string  `json:"staffId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
}

// CreateWorkLogRequest is the request to record a work interval.
type CreateWorkLogRequest struct {
	StaffID   string `json:"staffId"`
	WorkDate  string `json:"workDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func toWorkLogDTO(l *sqlite.WorkLog) WorkLogDTO {
	return WorkLogDTO{
		ID:            l.ID,
		StaffID:       l.StaffID,
		Date:          l.WorkDate,
		StartTime:     l.StartTime,
		EndTime:       l.EndTime,
		DurationHours: l.DurationHours.InexactFloat64(),
	}
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthlySummaryDTO is the monthly aggregation response. This server emits
// the map shape ("dailyHours"); the engine reconciler also accepts the
// older list shape from previous backend versions.
type MonthlySummaryDTO struct {
	DailyHours map[string]float64 `json:"dailyHours"`
	TotalHours float64            `json:"totalHours"`
	Year       int                `json:"year"`
	Month      int                `json:"month"`
}

func toMonthlySummaryDTO(daily engine.DailyHoursMap, year, month int) MonthlySummaryDTO {
	hours := make(map[string]float64, len(daily))
	for date, h := range daily {
		hours[date] = h.InexactFloat64()
	}
	return MonthlySummaryDTO{
		DailyHours: hours,
		TotalHours: daily.Total().InexactFloat64(),
		Year:       year,
		Month:      month,
	}
}

// =============================================================================
// SALARY
// =============================================================================

// SalaryDTO is the authoritative salary calculation response.
type SalaryDTO struct {
	StaffID     string  `json:"staffId"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	HourlyRate  string  `json:"hourlyRate"`
	TotalHours  float64 `json:"totalHours"`
	TotalAmount string  `json:"totalAmount"`
}

func toSalaryDTO(staffID string, year, month int, rate, totalHours, totalAmount decimal.Decimal) SalaryDTO {
	return SalaryDTO{
		StaffID:     staffID,
		Year:        year,
		Month:       month,
		HourlyRate:  rate.String(),
		TotalHours:  totalHours.InexactFloat64(),
		TotalAmount: totalAmount.String(),
	}
}
