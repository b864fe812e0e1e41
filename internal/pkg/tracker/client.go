// Package tracker implements the time-tracking provider client. The
// provider exposes a per-day worktime report: one entry per employee with
// bucketed activity seconds and the first observed activity of the day.
package tracker

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

func NewClient(cfg config.TrackerConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError represents a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker API error [%d]: %s", e.StatusCode, e.Body)
}

type worktimeItem struct {
	UserID            json.Number `json:"user_id"`
	Name              string      `json:"name"` // combined "Full Name, email"
	NonProductiveTime int         `json:"nonproductive_time"`
	UncategorizedTime int         `json:"uncategorized_time"`
	ProductiveTime    int         `json:"productive_time"`
	TotalTime         int         `json:"total_time"`
	FirstActivity     string      `json:"first_activity"` // "HH:MM"
}

// DaySummary implements source.ActivitySource.
func (c *Client) DaySummary(ctx context.Context, date time.Time) ([]source.ActivityEntry, error) {
	endpoint := fmt.Sprintf("%s/v1/reports/worktime?%s", c.baseURL, url.Values{
		"date": {date.Format("2006-01-02")},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build worktime request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worktime report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var items []worktimeItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode worktime report: %w", err)
	}

	entries := make([]source.ActivityEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, source.ActivityEntry{
			TrackerUserID:        item.UserID.String(),
			NameEmail:            item.Name,
			NonProductiveSeconds: item.NonProductiveTime,
			UncategorizedSeconds: item.UncategorizedTime,
			ProductiveSeconds:    item.ProductiveTime,
			TotalSeconds:         item.TotalTime,
			ClockIn:              item.FirstActivity,
		})
	}

	return entries, nil
}
