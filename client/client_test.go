package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timekeeping-engine/client"
	"github.com/warp/timekeeping-engine/engine"
)

func TestClient_CreateWorkLog_ValidatesBeforeSubmitting(t *testing.T) {
	// No request must reach the backend when local validation fails.
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)

	_, err := c.CreateWorkLog(context.Background(), "staff-1", "2024-01-15", "", "18:00")
	assert.ErrorIs(t, err, engine.ErrEmptyField)

	_, err = c.CreateWorkLog(context.Background(), "staff-1", "2024-01-15", "09:00", "25:00")
	assert.ErrorIs(t, err, engine.ErrInvalidFormat)

	assert.False(t, hit, "invalid input must not reach the backend")
}

func TestClient_CreateWorkLog_SendsNormalizedTimes(t *testing.T) {
	// GIVEN: a backend capturing the submitted body
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"log-1","staffId":"staff-1","date":"2024-01-15","startTime":"09:00","endTime":"23:59","durationHours":14.98}`))
	}))
	t.Cleanup(srv.Close)

	// WHEN: submitting the sentinel end and a single-digit start
	_, err := client.New(srv.URL).CreateWorkLog(context.Background(), "staff-1", "2024-01-15", "9:00", "24:00")
	require.NoError(t, err)

	// THEN: the wire carries canonical, sentinel-free times
	assert.Equal(t, "09:00", got["startTime"])
	assert.Equal(t, "23:59", got["endTime"])
}

func TestClient_ServerErrorsWrapBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := client.New(srv.URL).ListStaff(context.Background())
	assert.ErrorIs(t, err, engine.ErrBackendUnavailable)
}

func TestClient_ClientErrorsSurfaceBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"staffId and date are required"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := client.New(srv.URL).ListWorkLogs(context.Background(), "", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, engine.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "staffId and date are required")
}
