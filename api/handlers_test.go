/*
handlers_test.go - HTTP-level tests for the timekeeping API

Tests for:
- Staff creation, listing, advance updates
- Work-log validation and the 24:00 -> 23:59 rewrite at the HTTP boundary
- Monthly summary shape
- Salary endpoint math
*/
package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timekeeping-engine/api"
	"github.com/warp/timekeeping-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(api.NewRouter(api.NewHandler(store)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createStaff(t *testing.T, srv *httptest.Server, name string) api.StaffDTO {
	t.Helper()
	var staff api.StaffDTO
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/staff", fmt.Sprintf(`{"name":%q}`, name), &staff)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return staff
}

func createLog(t *testing.T, srv *httptest.Server, staffID, date, start, end string) api.WorkLogDTO {
	t.Helper()
	var log api.WorkLogDTO
	body := fmt.Sprintf(`{"staffId":%q,"workDate":%q,"startTime":%q,"endTime":%q}`, staffID, date, start, end)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/work-logs", body, &log)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return log
}

// =============================================================================
// STAFF
// =============================================================================

func TestAPI_StaffLifecycle(t *testing.T) {
	srv := newTestServer(t)

	staff := createStaff(t, srv, "Linh")
	assert.NotEmpty(t, staff.ID)
	assert.Equal(t, "Linh", staff.Name)
	assert.Zero(t, staff.AdvanceAmount)

	var list []api.StaffDTO
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/staff", "", &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1)

	var updated api.StaffDTO
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/staff/"+staff.ID+"/advance?amount=100000", "", &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(100000), updated.AdvanceAmount)
}

func TestAPI_UpdateAdvance_UnknownStaff(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/staff/nope/advance?amount=1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// WORK LOGS
// =============================================================================

func TestAPI_CreateWorkLog_ComputesDuration(t *testing.T) {
	srv := newTestServer(t)
	staff := createStaff(t, srv, "Linh")

	log := createLog(t, srv, staff.ID, "2024-01-15", "09:00", "18:00")
	assert.Equal(t, float64(9), log.DurationHours)
	assert.Equal(t, "09:00", log.StartTime)

	var logs []api.WorkLogDTO
	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/work-logs?staffId="+staff.ID+"&date=2024-01-15", "", &logs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, logs, 1)
}

func TestAPI_CreateWorkLog_EndOfDaySentinelNeverStored(t *testing.T) {
	// GIVEN: the UI submits "24:00" as end time
	srv := newTestServer(t)
	staff := createStaff(t, srv, "Linh")

	// WHEN: creating the log
	log := createLog(t, srv, staff.ID, "2024-01-15", "09:00", "24:00")

	// THEN: the stored end time is the rewritten "23:59"
	assert.Equal(t, "23:59", log.EndTime)
}

func TestAPI_CreateWorkLog_RejectsBadInput(t *testing.T) {
	srv := newTestServer(t)
	staff := createStaff(t, srv, "Linh")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty start", fmt.Sprintf(`{"staffId":%q,"workDate":"2024-01-15","startTime":"","endTime":"18:00"}`, staff.ID), http.StatusBadRequest},
		{"bad end format", fmt.Sprintf(`{"staffId":%q,"workDate":"2024-01-15","startTime":"09:00","endTime":"25:00"}`, staff.ID), http.StatusBadRequest},
		{"bad date", fmt.Sprintf(`{"staffId":%q,"workDate":"15/01/2024","startTime":"09:00","endTime":"18:00"}`, staff.ID), http.StatusBadRequest},
		{"unknown staff", `{"staffId":"nope","workDate":"2024-01-15","startTime":"09:00","endTime":"18:00"}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/work-logs", tc.body, nil)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

// =============================================================================
// MONTHLY SUMMARY AND SALARY
// =============================================================================

func TestAPI_MonthlySummary(t *testing.T) {
	srv := newTestServer(t)
	staff := createStaff(t, srv, "Linh")

	createLog(t, srv, staff.ID, "2024-01-15", "09:00", "12:00")
	createLog(t, srv, staff.ID, "2024-01-15", "13:00", "18:00")
	createLog(t, srv, staff.ID, "2024-01-20", "09:00", "17:00")

	var summary api.MonthlySummaryDTO
	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/daily-summaries/monthly?staffId="+staff.ID+"&year=2024&month=1", "", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 1, summary.Month)
	assert.Equal(t, float64(8), summary.DailyHours["2024-01-15"])
	assert.Equal(t, float64(8), summary.DailyHours["2024-01-20"])
	assert.Equal(t, float64(16), summary.TotalHours)
}

func TestAPI_CalculateSalary(t *testing.T) {
	srv := newTestServer(t)
	staff := createStaff(t, srv, "Linh")

	// 20 working days of 8 hours = 160 hours
	for day := 1; day <= 20; day++ {
		createLog(t, srv, staff.ID, fmt.Sprintf("2024-01-%02d", day), "09:00", "17:00")
	}

	var salary api.SalaryDTO
	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/staff/"+staff.ID+"/salary?year=2024&month=1&hourlyRate=50000", "", &salary)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(160), salary.TotalHours)
	assert.Equal(t, "50000", salary.HourlyRate)
	assert.Equal(t, "8000000", salary.TotalAmount)
}

func TestAPI_CalculateSalary_BadParams(t *testing.T) {
	srv := newTestServer(t)
	staff := createStaff(t, srv, "Linh")

	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/staff/"+staff.ID+"/salary?year=2024&month=13&hourlyRate=50000", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/staff/"+staff.ID+"/salary?year=2024&month=1&hourlyRate=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
