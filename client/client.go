/*
Package client is the dashboard-side consumer of the timekeeping API.

PURPOSE:
  A typed HTTP client for the backend REST surface, plus the Session state
  holder the dashboard drives (see session.go). The client treats response
  bodies as untrusted: monthly summaries go through the engine reconciler
  before anything else sees them.

ERROR POLICY:
  Transport failures and 5xx responses wrap engine.ErrBackendUnavailable so
  callers can branch on errors.Is and fall back to local computation where
  the contract allows it (salary). 4xx responses surface the backend's
  message as-is.

SEE ALSO:
  - session.go: Cached state, salary fallback, stale-fetch discard
  - engine/summary.go: Reconciliation of the monthly response shapes
*/
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/timekeeping-engine/engine"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Staff mirrors the backend staff resource.
type Staff struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	AdvanceAmount decimal.Decimal `json:"advanceAmount"`
}

// WorkLog mirrors one recorded work interval.
type WorkLog struct {
	ID            string          `json:"id"`
	StaffID       string          `json:"staffId"`
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	DurationHours decimal.Decimal `json:"durationHours"`
}

// SalaryCalculation is the authoritative salary response.
type SalaryCalculation struct {
	StaffID     string          `json:"staffId"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a typed client for the timekeeping backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListStaff fetches all staff members.
func (c *Client) ListStaff(ctx context.Context) ([]Staff, error) {
	var out []Staff
	err := c.doJSON(ctx, http.MethodGet, "/api/staff", nil, &out)
	return out, err
}

// CreateStaff creates a staff member.
func (c *Client) CreateStaff(ctx context.Context, name string) (*Staff, error) {
	var out Staff
	err := c.doJSON(ctx, http.MethodPost, "/api/staff",
		map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdvance sets a staff member's advance amount.
func (c *Client) UpdateAdvance(ctx context.Context, staffID string, amount decimal.Decimal) (*Staff, error) {
	path := fmt.Sprintf("/api/staff/%s/advance?amount=%s",
		url.PathEscape(staffID), url.QueryEscape(amount.String()))

	var out Staff
	if err := c.doJSON(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateSalary fetches the authoritative salary for one staff/month.
func (c *Client) CalculateSalary(ctx context.Context, staffID string, year, month int, hourlyRate decimal.Decimal) (*SalaryCalculation, error) {
	path := fmt.Sprintf("/api/staff/%s/salary?year=%d&month=%d&hourlyRate=%s",
		url.PathEscape(staffID), year, month, url.QueryEscape(hourlyRate.String()))

	var out SalaryCalculation
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWorkLogs fetches the logs for one staff member on one ISO date.
func (c *Client) ListWorkLogs(ctx context.Context, staffID, date string) ([]WorkLog, error) {
	path := fmt.Sprintf("/api/work-logs?staffId=%s&date=%s",
		url.QueryEscape(staffID), url.QueryEscape(date))

	var out []WorkLog
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// CreateWorkLog validates the interval locally, then submits it. The
// validated (sentinel-free, canonical HH:mm) times are what goes on the
// wire.
func (c *Client) CreateWorkLog(ctx context.Context, staffID, workDate, startTime, endTime string) (*WorkLog, error) {
	interval, err := engine.ValidateWorkLog(startTime, endTime)
	if err != nil {
		return nil, err
	}

	var out WorkLog
	err = c.doJSON(ctx, http.MethodPost, "/api/work-logs", map[string]string{
		"staffId":   staffID,
		"workDate":  workDate,
		"startTime": interval.Start,
		"endTime":   interval.End,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthlySummary fetches and reconciles the monthly aggregation, returning
// the canonical date->hours map regardless of which shape the backend sent.
func (c *Client) MonthlySummary(ctx context.Context, staffID string, year, month int) (engine.DailyHoursMap, error) {
	path := fmt.Sprintf("/api/daily-summaries/monthly?staffId=%s&year=%d&month=%d",
		url.QueryEscape(staffID), year, month)

	var raw engine.MonthlySummaryRaw
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return engine.NormalizeMonthlySummary(raw), nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = strings.NewReader(string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: backend returned %d", engine.ErrBackendUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("backend rejected request (%d): %s", resp.StatusCode, body.Message)
	}
	return fmt.Errorf("backend rejected request (%d)", resp.StatusCode)
}
