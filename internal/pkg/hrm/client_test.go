package hrm

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

func TestApprovedLeaves(t *testing.T) {
	from := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leaves", r.URL.Path)
		assert.Equal(t, "2025-08-18", r.URL.Query().Get("from"))
		assert.Equal(t, "2025-08-22", r.URL.Query().Get("to"))
		assert.Equal(t, "approved", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer hr-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"email": "ada@example.com", "leave_type": "annual",
			 "date_from": "2025-08-19", "date_to": "2025-08-21"},
			{"email": "grace@example.com", "leave_type": "sick",
			 "date_from": "2025-08-20", "date_to": "2025-08-20"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(config.HRMConfig{BaseURL: srv.URL, APIKey: "hr-key"})
	entries, err := c.ApprovedLeaves(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ada@example.com", entries[0].Email)
	assert.Equal(t, "annual", entries[0].Type)
	assert.Equal(t, time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC), entries[0].StartDate)
	assert.Equal(t, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC), entries[0].EndDate)

	assert.Equal(t, entries[1].StartDate, entries[1].EndDate)
}

func TestApprovedLeavesSkipsMalformedIntervals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"email": "bad@example.com", "leave_type": "annual",
			 "date_from": "not-a-date", "date_to": "2025-08-20"},
			{"email": "also-bad@example.com", "leave_type": "annual",
			 "date_from": "2025-08-20", "date_to": ""},
			{"email": "ok@example.com", "leave_type": "annual",
			 "date_from": "2025-08-20", "date_to": "2025-08-20"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(config.HRMConfig{BaseURL: srv.URL})
	entries, err := c.ApprovedLeaves(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok@example.com", entries[0].Email)
}

func TestApprovedLeavesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad token"}`))
	}))
	defer srv.Close()

	c := NewClient(config.HRMConfig{BaseURL: srv.URL})
	_, err := c.ApprovedLeaves(context.Background(), time.Now(), time.Now())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "bad token")
}
