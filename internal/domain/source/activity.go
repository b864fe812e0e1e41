// Package source defines the shapes the two external data sources deliver
// and the adapter interfaces the engine consumes them through. The engine
// treats both sources as best-effort: a failed fetch degrades to an empty
// set and the run continues.
package source

import (
	"context"
	"strings"
	"time"
)

// ActivityEntry is one employee's activity totals for one day, as reported
// by the time-tracking provider.
type ActivityEntry struct {
	TrackerUserID string

	// NameEmail is the provider's combined "Full Name, email@host" string.
	NameEmail string

	NonProductiveSeconds int
	UncategorizedSeconds int
	ProductiveSeconds    int
	TotalSeconds         int

	// ClockIn is the first observed activity of the day, "HH:MM".
	ClockIn string
}

// SplitNameEmail separates the provider's combined identity string. The
// email is whatever follows the last comma and contains an "@"; everything
// before it is the name.
func (e ActivityEntry) SplitNameEmail() (name, email string) {
	s := strings.TrimSpace(e.NameEmail)
	idx := strings.LastIndex(s, ",")
	if idx < 0 {
		if strings.Contains(s, "@") {
			return "", s
		}
		return s, ""
	}
	name = strings.TrimSpace(s[:idx])
	tail := strings.TrimSpace(s[idx+1:])
	if strings.Contains(tail, "@") {
		return name, tail
	}
	return s, ""
}

// HasIdentity reports whether the entry carries anything to resolve an
// employee by. Entries without any identity are skipped as malformed.
func (e ActivityEntry) HasIdentity() bool {
	name, email := e.SplitNameEmail()
	return e.TrackerUserID != "" || email != "" || name != ""
}

// ActivitySource fetches the per-day activity summary from the
// time-tracking provider.
type ActivitySource interface {
	DaySummary(ctx context.Context, date time.Time) ([]ActivityEntry, error)
}
