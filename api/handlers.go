/*
handlers.go - HTTP API handlers for the timekeeping backend

PURPOSE:
  Exposes the store and engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates computation to the engine.

ENDPOINTS:
  Staff:
    GET    /api/staff                      List staff
    POST   /api/staff                      Create staff member
    PUT    /api/staff/{id}/advance?amount= Update advance amount
    GET    /api/staff/{id}/salary          Authoritative salary for a month

  Work logs:
    GET    /api/work-logs?staffId&date     Logs for one staff/date
    POST   /api/work-logs                  Record a work interval

  Summaries:
    GET    /api/daily-summaries/monthly?staffId&year&month
                                           Per-day hours for a month

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (engine validator for work-log times)
  3. Call store / engine
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Staff not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/timekeeping-engine/engine"
	"github.com/warp/timekeeping-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// STAFF HANDLERS
// =============================================================================

// ListStaff returns all staff members.
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Store.ListStaff(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}

	dtos := make([]StaffDTO, len(staff))
	for i := range staff {
		dtos[i] = toStaffDTO(&staff[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateStaff creates a new staff member.
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	staff, err := h.Store.CreateStaff(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create staff", err)
		return
	}
	writeJSON(w, http.StatusCreated, toStaffDTO(staff))
}

// UpdateAdvance sets the advance amount for a staff member.
// PUT /api/staff/{id}/advance?amount=
func (h *Handler) UpdateAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	staff, err := h.Store.UpdateAdvance(r.Context(), id, amount)
	if errors.Is(err, engine.ErrStaffNotFound) {
		writeError(w, http.StatusNotFound, "Staff not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update advance", err)
		return
	}
	writeJSON(w, http.StatusOK, toStaffDTO(staff))
}

// CalculateSalary returns the authoritative salary for one staff/month.
// GET /api/staff/{id}/salary?year&month&hourlyRate
func (h *Handler) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}
	rate, err := decimal.NewFromString(r.URL.Query().Get("hourlyRate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hourlyRate", err)
		return
	}

	if _, err := h.Store.GetStaff(r.Context(), id); err != nil {
		if errors.Is(err, engine.ErrStaffNotFound) {
			writeError(w, http.StatusNotFound, "Staff not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get staff", err)
		return
	}

	daily, err := h.Store.MonthlyDailyHours(r.Context(), id, year, time.Month(month))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate month", err)
		return
	}

	total := daily.Total()
	figures := engine.CalculateSalary(total, rate, decimal.Zero)
	writeJSON(w, http.StatusOK, toSalaryDTO(id, year, month, rate, total, figures.GrossSalary))
}

// =============================================================================
// WORK LOG HANDLERS
// =============================================================================

// ListWorkLogs returns the logs for one staff member on one date.
// GET /api/work-logs?staffId&date
func (h *Handler) ListWorkLogs(w http.ResponseWriter, r *http.Request) {
	staffID := r.URL.Query().Get("staffId")
	date := r.URL.Query().Get("date")
	if staffID == "" || date == "" {
		writeError(w, http.StatusBadRequest, "staffId and date are required", nil)
		return
	}

	logs, err := h.Store.ListWorkLogs(r.Context(), staffID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work logs", err)
		return
	}

	dtos := make([]WorkLogDTO, len(logs))
	for i := range logs {
		dtos[i] = toWorkLogDTO(&logs[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWorkLog validates and records a work interval. The stored duration
// is computed here; the "24:00" sentinel never reaches the row (the
// validator rewrites it to 23:59).
func (h *Handler) CreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StaffID == "" {
		writeError(w, http.StatusBadRequest, "staffId is required", nil)
		return
	}
	if _, err := time.Parse("2006-01-02", req.WorkDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workDate format (use YYYY-MM-DD)", err)
		return
	}

	interval, err := engine.ValidateWorkLog(req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	if _, err := h.Store.GetStaff(r.Context(), req.StaffID); err != nil {
		if errors.Is(err, engine.ErrStaffNotFound) {
			writeError(w, http.StatusNotFound, "Staff not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get staff", err)
		return
	}

	start, _ := engine.ParseTimeOfDay(interval.Start)
	end, _ := engine.ParseTimeOfDay(interval.End)

	log, err := h.Store.CreateWorkLog(r.Context(), sqlite.WorkLog{
		StaffID:       req.StaffID,
		WorkDate:      req.WorkDate,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		DurationHours: engine.ComputeDuration(start, end),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create work log", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkLogDTO(log))
}

// =============================================================================
// MONTHLY SUMMARY HANDLER
// =============================================================================

// MonthlySummary returns the per-day hours for one staff/month.
// GET /api/daily-summaries/monthly?staffId&year&month
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	staffID := r.URL.Query().Get("staffId")
	if staffID == "" {
		writeError(w, http.StatusBadRequest, "staffId is required", nil)
		return
	}
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	daily, err := h.Store.MonthlyDailyHours(r.Context(), staffID, year, time.Month(month))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate month", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthlySummaryDTO(daily, year, month))
}

// =============================================================================
// HELPERS
// =============================================================================

func yearMonthParams(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, 0, false
	}
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month (use 1-12)", err)
		return 0, 0, false
	}
	return year, month, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"message": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
