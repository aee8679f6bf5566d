/*
session.go - Dashboard application state

PURPOSE:
  Session replaces the original dashboard's scattered global UI state with
  one explicit struct: the selected staff member, the displayed month, the
  operator-entered rate and target, and the cached monthly map. All
  computation stays in the engine; Session only sequences fetches and holds
  the latest accepted results.

CACHE DISCIPLINE:
  The cached daily map is always replaced whole after a successful round
  trip, never mutated incrementally. A failed refresh keeps the previous
  map in place.

LAST REQUEST WINS:
  Changing the staff or month while a monthly fetch is in flight must not
  let the slow response overwrite fresher data. Every fetch takes a ticket
  from a generation counter; a result is applied only if no newer fetch
  (or selection change) has started since. This is a required invariant of
  the dashboard, not an optimization.

SALARY FALLBACK:
  Salary prefers the authoritative backend figure. When the backend is
  unreachable, the session recomputes locally from the cached map and tags
  the result as a local estimate so the UI can badge it.

SEE ALSO:
  - client.go: The underlying HTTP calls
  - engine/: All the actual math
*/
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/timekeeping-engine/engine"
)

// Session holds the dashboard state for one operator.
type Session struct {
	client *Client

	mu    sync.Mutex
	gen   uint64 // monotonically increasing fetch ticket
	staff *Staff
	year  int
	month time.Month

	hourlyRate  decimal.Decimal
	dailyTarget decimal.Decimal
	daily       engine.DailyHoursMap
}

// NewSession creates a session for the given backend client, starting on
// the given month with the default 8h daily target.
func NewSession(c *Client, year int, month time.Month) *Session {
	return &Session{
		client:      c,
		year:        year,
		month:       month,
		dailyTarget: engine.DefaultDailyTarget,
		daily:       engine.DailyHoursMap{},
	}
}

// =============================================================================
// SELECTION
// =============================================================================

// SelectStaff switches the session to a staff member. The cached map is
// cleared and any in-flight monthly fetch is invalidated.
func (s *Session) SelectStaff(staff *Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = staff
	s.daily = engine.DailyHoursMap{}
	s.gen++
}

// SelectMonth switches the displayed month, invalidating in-flight fetches.
func (s *Session) SelectMonth(year int, month time.Month) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.year = year
	s.month = month
	s.daily = engine.DailyHoursMap{}
	s.gen++
}

// SetHourlyRate records the operator-entered hourly rate.
func (s *Session) SetHourlyRate(rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hourlyRate = rate
}

// SetDailyTarget records the configured daily target hours.
func (s *Session) SetDailyTarget(target decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyTarget = target
}

// Staff returns the currently selected staff member, or nil.
func (s *Session) Staff() *Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staff
}

// =============================================================================
// MONTHLY REFRESH
// =============================================================================

// RefreshMonthly fetches the monthly summary for the current selection and
// replaces the cached map. On error the previous map is kept. A response
// that arrives after a newer fetch or selection change is discarded.
func (s *Session) RefreshMonthly(ctx context.Context) error {
	s.mu.Lock()
	if s.staff == nil {
		s.mu.Unlock()
		return engine.ErrStaffNotFound
	}
	s.gen++
	ticket := s.gen
	staffID := s.staff.ID
	year, month := s.year, s.month
	s.mu.Unlock()

	daily, err := s.client.MonthlySummary(ctx, staffID, year, int(month))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.gen {
		// A newer fetch or selection change superseded this response.
		return nil
	}
	s.daily = daily
	return nil
}

// Daily returns the cached monthly map.
func (s *Session) Daily() engine.DailyHoursMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily
}

// Rollup computes the monthly rollup over the cached map.
func (s *Session) Rollup() engine.MonthlyRollup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Rollup(s.daily, engine.DaysInMonth(s.year, s.month), s.dailyTarget)
}

// DayView returns the calendar-cell view for one day of the current month.
func (s *Session) DayView(day int) engine.DayView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.DayViewFor(s.daily, engine.DateKey(s.year, s.month, day), s.dailyTarget)
}

// =============================================================================
// SALARY
// =============================================================================

// Salary returns the salary for the current selection. The backend figure
// is preferred; when it is unavailable the session falls back to the local
// computation over the cached map, tagged as a local estimate. Any other
// error (bad input, unknown staff) is returned as-is.
func (s *Session) Salary(ctx context.Context) (engine.SalaryResult, error) {
	s.mu.Lock()
	if s.staff == nil {
		s.mu.Unlock()
		return engine.SalaryResult{}, engine.ErrStaffNotFound
	}
	staffID := s.staff.ID
	advance := s.staff.AdvanceAmount
	rate := s.hourlyRate
	year, month := s.year, s.month
	cachedTotal := s.daily.Total()
	s.mu.Unlock()

	calc, err := s.client.CalculateSalary(ctx, staffID, year, int(month), rate)
	if err != nil {
		if errors.Is(err, engine.ErrBackendUnavailable) {
			return engine.SalaryResult{
				Figures: engine.CalculateSalary(cachedTotal, rate, advance),
				Source:  engine.SourceLocalEstimate,
			}, nil
		}
		return engine.SalaryResult{}, err
	}

	return engine.SalaryResult{
		Figures: engine.CalculateSalary(calc.TotalHours, calc.HourlyRate, advance),
		Source:  engine.SourceAuthoritative,
	}, nil
}
