// Package hrm implements the HR system client used to pull approved leave
// intervals for a date range.
package hrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stafftrack/attendance-sync/internal/config"
	"github.com/stafftrack/attendance-sync/internal/domain/source"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg config.HRMConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError represents a non-2xx response from the HR system.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hrm API error [%d]: %s", e.StatusCode, e.Body)
}

type leaveItem struct {
	Email    string `json:"email"`
	Type     string `json:"leave_type"`
	DateFrom string `json:"date_from"` // "2006-01-02", inclusive
	DateTo   string `json:"date_to"`   // "2006-01-02", inclusive
}

// ApprovedLeaves implements source.LeaveSource.
func (c *Client) ApprovedLeaves(ctx context.Context, from, to time.Time) ([]source.LeaveEntry, error) {
	endpoint := fmt.Sprintf("%s/api/leaves?%s", c.baseURL, url.Values{
		"from":   {from.Format("2006-01-02")},
		"to":     {to.Format("2006-01-02")},
		"status": {"approved"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaves request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaves: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var items []leaveItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode leaves: %w", err)
	}

	entries := make([]source.LeaveEntry, 0, len(items))
	for _, item := range items {
		start, err := time.Parse("2006-01-02", item.DateFrom)
		if err != nil {
			// Malformed interval: skip this entry, keep the rest.
			continue
		}
		end, err := time.Parse("2006-01-02", item.DateTo)
		if err != nil {
			continue
		}
		entries = append(entries, source.LeaveEntry{
			Email:     item.Email,
			Type:      item.Type,
			StartDate: start,
			EndDate:   end,
		})
	}

	return entries, nil
}
