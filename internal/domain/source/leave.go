package source

import (
	"context"
	"time"
)

// LeaveEntry is one approved leave interval from the HR system. Start and
// end dates are inclusive.
type LeaveEntry struct {
	Email     string
	Type      string
	StartDate time.Time
	EndDate   time.Time
}

// Covers reports whether the interval includes the given calendar date.
func (l LeaveEntry) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(l.StartDate.Truncate(24*time.Hour)) &&
		!d.After(l.EndDate.Truncate(24*time.Hour))
}

// LeaveSource fetches approved leave intervals overlapping a date range
// from the HR system.
type LeaveSource interface {
	ApprovedLeaves(ctx context.Context, from, to time.Time) ([]LeaveEntry, error)
}
