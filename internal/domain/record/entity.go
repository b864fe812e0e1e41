package record

import (
	"time"
)

// Record is one employee's attendance for one calendar date. The pair
// (Date, CanonicalKey) is unique: every reconciliation run rebuilds the
// whole date from source data and reapplies manually overridden fields, so
// storage-wise a record is replaced, never updated in place.
type Record struct {
	ID   string
	Date time.Time

	// Identity, stored redundantly for lookup robustness.
	CanonicalKey  string
	EmployeeName  string
	Email         string
	TrackerUserID string

	// Org hierarchy snapshot, copied from the schedule at computation time
	// and independently correctable afterwards.
	Project    string
	Department string
	Team       string
	Location   string

	ScheduledStart string // "HH:MM", empty when unscheduled
	ActualStart    string // "HH:MM", empty when absent
	LateMinutes    int

	NonProductiveMinutes int
	UncategorizedMinutes int
	ProductiveMinutes    int
	TotalMinutes         int
	CorrectedTotal       *int

	Status      Status
	LeaveReason string
	Notes       string

	ControlManager *int

	// Manual marks which fields were last set by an operator. A flagged
	// field survives every recompute until the flag is explicitly cleared.
	Manual OverrideFlags

	CreatedAt time.Time
	UpdatedAt time.Time
}
