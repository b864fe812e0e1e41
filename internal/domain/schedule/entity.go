package schedule

import (
	"time"
)

// Entry is one employee's expected schedule plus the identity fields the
// reconciliation run matches raw source records against.
type Entry struct {
	ID            string
	Name          string
	Email         string
	TrackerUserID string

	StartsAt string // expected clock-in, "HH:MM", empty when unscheduled

	Location   string
	Project    string
	Department string
	Team       string

	ControlManager *int

	Excluded  bool
	ShiftNote string // non-standard schedule marker, e.g. "night"

	// Aliases are alternate raw names or emails that source records may carry
	// for this employee.
	Aliases []string

	// Manual marks schedule fields last edited by hand in the admin tooling.
	// Informational here: the engine never writes schedule entries.
	Manual map[string]bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasIdentity reports whether the entry carries at least one field a raw
// record could match on.
func (e Entry) HasIdentity() bool {
	return e.TrackerUserID != "" || e.Email != "" || e.Name != ""
}

// Skipped reports whether the engine must ignore this entry entirely.
func (e Entry) Skipped() bool {
	return e.Excluded || e.ShiftNote == ShiftNight
}

// ShiftNight marks entries on a night schedule. Their days do not line up
// with calendar dates, so the daily run never touches them.
const ShiftNight = "night"
