package record

import (
	"strconv"
	"strings"
)

// Status is the attendance state of a record. It is a stored value, not a
// state machine: Classify maps one day's facts to one status.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

// DefaultGraceMinutes is the lateness threshold below which an employee is
// still classified present.
const DefaultGraceMinutes = 15

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// Classify maps one day's facts to a status. Precedence, highest first:
// leave (even when the employee logged activity that day), absent, late,
// present.
func Classify(hasActivity bool, leaveReason string, lateMinutes, graceMinutes int) Status {
	switch {
	case leaveReason != "":
		return StatusLeave
	case !hasActivity:
		return StatusAbsent
	case lateMinutes > graceMinutes:
		return StatusLate
	default:
		return StatusPresent
	}
}

// LateBy computes minutes late as max(0, actual - scheduled), both parsed as
// minutes since midnight from "HH:MM"-family strings. Unparseable or absent
// times count as 0: an unscheduled or unrecorded start is never late.
func LateBy(scheduled, actual string) int {
	sched, ok := ClockMinutes(scheduled)
	if !ok {
		return 0
	}
	act, ok := ClockMinutes(actual)
	if !ok {
		return 0
	}
	if act <= sched {
		return 0
	}
	return act - sched
}

// ClockMinutes parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are ignored.
func ClockMinutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
