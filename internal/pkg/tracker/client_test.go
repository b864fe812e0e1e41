package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/attendance-sync/internal/config"
)

func TestDaySummary(t *testing.T) {
	day := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/worktime", r.URL.Path)
		assert.Equal(t, "2025-08-20", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"user_id": 42, "name": "Ada Byron, ada@example.com",
			 "nonproductive_time": 600, "uncategorized_time": 120,
			 "productive_time": 21600, "total_time": 22320,
			 "first_activity": "09:05"},
			{"user_id": "43", "name": "Grace Hopper, grace@example.com",
			 "productive_time": 18000, "total_time": 18000,
			 "first_activity": "10:40"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(config.TrackerConfig{BaseURL: srv.URL, APIKey: "test-key"})
	entries, err := c.DaySummary(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Numeric and string user ids both arrive as strings.
	assert.Equal(t, "42", entries[0].TrackerUserID)
	assert.Equal(t, "Ada Byron, ada@example.com", entries[0].NameEmail)
	assert.Equal(t, 600, entries[0].NonProductiveSeconds)
	assert.Equal(t, 21600, entries[0].ProductiveSeconds)
	assert.Equal(t, 22320, entries[0].TotalSeconds)
	assert.Equal(t, "09:05", entries[0].ClockIn)

	assert.Equal(t, "43", entries[1].TrackerUserID)
	assert.Zero(t, entries[1].NonProductiveSeconds)
}

func TestDaySummaryEmptyReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(config.TrackerConfig{BaseURL: srv.URL})
	entries, err := c.DaySummary(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDaySummaryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer srv.Close()

	c := NewClient(config.TrackerConfig{BaseURL: srv.URL})
	_, err := c.DaySummary(context.Background(), time.Now())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "maintenance")
}

func TestDaySummaryMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := NewClient(config.TrackerConfig{BaseURL: srv.URL})
	_, err := c.DaySummary(context.Background(), time.Now())
	assert.Error(t, err)
}
