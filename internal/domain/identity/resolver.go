// Package identity canonicalizes employee identity across the three
// independently-keyed inputs: the tracker's activity summary (keyed by a
// numeric user id), the HR system's leave records (keyed by email) and the
// schedule registry (keyed by display name).
package identity

import (
	"github.com/stafftrack/attendance-sync/internal/domain/schedule"
)

// Canonical returns the normalized key used to deduplicate an employee
// across sources. Precedence: tracker user id, then email, then name.
// Returns "" when the record carries no identity at all.
func Canonical(trackerID, email, name string) string {
	if key := schedule.Normalize(trackerID); key != "" {
		return key
	}
	if key := schedule.Normalize(email); key != "" {
		return key
	}
	return schedule.Normalize(name)
}

// Resolver matches raw source records against schedule directory entries.
// There is deliberately no fuzzy matching here: approximate name matching is
// a one-off, human-reviewed migration step, never part of the daily run.
type Resolver struct {
	dir *schedule.Directory
}

func NewResolver(dir *schedule.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Match finds the directory entry a raw record belongs to. Any of the three
// fields may match any of the entry's corresponding fields (or aliases),
// case-insensitively. Lookup order mirrors the canonical-key precedence, so
// a record matching different entries through different fields resolves to
// the highest-precedence one; the directory's load-time duplicate check
// keeps that situation from arising out of a consistent registry.
func (r *Resolver) Match(trackerID, email, name string) *schedule.Entry {
	if e := r.dir.LookupByID(trackerID); e != nil {
		return e
	}
	if e := r.dir.LookupByEmail(email); e != nil {
		return e
	}
	return r.dir.LookupByName(name)
}

// Key returns the canonical key of a matched record: the entry's own
// identity when matched, so the same employee collapses to one key no
// matter which raw field the source happened to carry.
func (r *Resolver) Key(trackerID, email, name string) string {
	if e := r.Match(trackerID, email, name); e != nil {
		return Canonical(e.TrackerUserID, e.Email, e.Name)
	}
	return Canonical(trackerID, email, name)
}
