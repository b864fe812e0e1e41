// Package reconcile implements the attendance reconciliation engine: for one
// calendar date it merges the tracker's activity summary, the HR system's
// approved leaves and the schedule registry into one record per employee.
//
// The engine recomputes a date by full replacement: snapshot the manually
// overridden fields, delete the day's records, rebuild every record from
// source data, reapply the overrides and insert the result. All of it runs
// in one transaction, so a failure partway through leaves the previous
// record set untouched. Given unchanged sources the run is idempotent.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/attendance-sync/internal/domain/identity"
	"github.com/stafftrack/attendance-sync/internal/domain/record"
	"github.com/stafftrack/attendance-sync/internal/domain/schedule"
	"github.com/stafftrack/attendance-sync/internal/domain/source"
	"github.com/stafftrack/attendance-sync/internal/pkg/database"
	"github.com/stafftrack/attendance-sync/internal/repository/postgresql"
)

type Service struct {
	db        *database.DB
	records   record.Repository
	schedules schedule.Repository
	activity  source.ActivitySource
	leaves    source.LeaveSource
	grace     int
}

func NewService(
	db *database.DB,
	records record.Repository,
	schedules schedule.Repository,
	activity source.ActivitySource,
	leaves source.LeaveSource,
	graceMinutes int,
) *Service {
	if graceMinutes <= 0 {
		graceMinutes = record.DefaultGraceMinutes
	}
	return &Service{
		db:        db,
		records:   records,
		schedules: schedules,
		activity:  activity,
		leaves:    leaves,
		grace:     graceMinutes,
	}
}

// Summary is the user-visible result of one reconciliation run. A degraded
// source means its fetch failed and the run continued with an empty set.
type Summary struct {
	Date             string `json:"date"`
	Created          int    `json:"created"`
	Deleted          int64  `json:"deleted"`
	Restored         int    `json:"restored"`
	ActivityEntries  int    `json:"activity_entries"`
	LeaveEntries     int    `json:"leave_entries"`
	ActivityDegraded bool   `json:"activity_degraded"`
	LeaveDegraded    bool   `json:"leave_degraded"`
}

// Reconcile recomputes the record set for one date. includeAbsent controls
// whether scheduled employees with no activity and no leave get an explicit
// absent record or are omitted.
func (s *Service) Reconcile(ctx context.Context, date time.Time, includeAbsent bool) (Summary, error) {
	day := dateOnly(date)
	summary := Summary{Date: day.Format("2006-01-02")}

	entries, err := s.schedules.ListAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load schedule registry: %w", err)
	}
	dir, err := schedule.NewDirectory(entries)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to build schedule directory: %w", err)
	}
	resolver := identity.NewResolver(dir)

	// Both sources are best-effort: a failed fetch degrades to an empty set
	// and the run continues on whatever the other source plus the schedule
	// registry provide.
	leaves, err := s.leaves.ApprovedLeaves(ctx, day, day)
	if err != nil {
		slog.Error("leave fetch failed, continuing without leave data",
			"date", summary.Date, "error", err)
		leaves = nil
		summary.LeaveDegraded = true
	}
	acts, err := s.activity.DaySummary(ctx, day)
	if err != nil {
		slog.Error("activity fetch failed, continuing without activity data",
			"date", summary.Date, "error", err)
		acts = nil
		summary.ActivityDegraded = true
	}
	summary.ActivityEntries = len(acts)
	summary.LeaveEntries = len(leaves)

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.records.ListByDate(txCtx, day)
		if err != nil {
			return fmt.Errorf("failed to load existing records: %w", err)
		}
		snaps := snapshotOverrides(existing)

		deleted, err := s.records.DeleteByDate(txCtx, day)
		if err != nil {
			return fmt.Errorf("failed to clear date: %w", err)
		}

		built, restored := s.buildDay(day, dir, resolver, acts, leaves, snaps, includeAbsent)

		if err := s.records.BulkCreate(txCtx, built); err != nil {
			return fmt.Errorf("failed to persist rebuilt records: %w", err)
		}

		summary.Deleted = deleted
		summary.Created = len(built)
		summary.Restored = restored
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	slog.Info("reconciliation run complete",
		"date", summary.Date,
		"created", summary.Created,
		"restored", summary.Restored,
		"activity_degraded", summary.ActivityDegraded,
		"leave_degraded", summary.LeaveDegraded,
	)
	return summary, nil
}

// ReconcileRange runs day by day over an inclusive date range, strictly
// sequentially. The first persistence failure aborts the remaining days.
func (s *Service) ReconcileRange(ctx context.Context, from, to time.Time, includeAbsent bool) ([]Summary, error) {
	start, end := dateOnly(from), dateOnly(to)
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: %s is after %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var summaries []Summary
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		summary, err := s.Reconcile(ctx, day, includeAbsent)
		if err != nil {
			return summaries, fmt.Errorf("run for %s failed: %w", day.Format("2006-01-02"), err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// snapshot holds what must survive the delete: the overridden field values
// and, in case the employee vanishes from every source, the whole record.
type snapshot struct {
	overrides record.Overrides
	full      record.Record
}

func snapshotOverrides(existing []record.Record) map[string]snapshot {
	snaps := make(map[string]snapshot)
	for _, rec := range existing {
		if !rec.Manual.Any() {
			continue
		}
		snaps[rec.CanonicalKey] = snapshot{overrides: record.Extract(rec), full: rec}
	}
	return snaps
}

// buildDay computes the full record set for one date from already-fetched
// inputs. Returns the records in deterministic order plus the count of
// override snapshots re-inserted for employees that vanished from every
// source.
func (s *Service) buildDay(
	day time.Time,
	dir *schedule.Directory,
	resolver *identity.Resolver,
	acts []source.ActivityEntry,
	leaves []source.LeaveEntry,
	snaps map[string]snapshot,
	includeAbsent bool,
) ([]record.Record, int) {
	leaveByEmail := make(map[string]string)
	for _, l := range leaves {
		if l.Covers(day) && schedule.Normalize(l.Email) != "" {
			leaveByEmail[schedule.Normalize(l.Email)] = l.Type
		}
	}

	built := make(map[string]record.Record)
	var order []string
	consumed := make(map[string]bool)

	add := func(rec record.Record) {
		if _, dup := built[rec.CanonicalKey]; dup {
			// Two raw entries collapsed to one identity: a known ambiguity,
			// resolved last-write-wins, never dropped silently.
			slog.Warn("duplicate identity within run, last write wins",
				"key", rec.CanonicalKey, "date", day.Format("2006-01-02"))
		} else {
			order = append(order, rec.CanonicalKey)
		}
		if snap, ok := snaps[rec.CanonicalKey]; ok {
			record.Apply(&rec, snap.overrides)
			consumed[rec.CanonicalKey] = true
		}
		built[rec.CanonicalKey] = rec
	}

	// Activity records.
	for _, a := range acts {
		if !a.HasIdentity() {
			slog.Warn("skipping activity entry without identity", "date", day.Format("2006-01-02"))
			continue
		}
		name, email := a.SplitNameEmail()
		entry := resolver.Match(a.TrackerUserID, email, name)

		rec := record.Record{
			ID:            uuid.NewString(),
			Date:          day,
			EmployeeName:  name,
			Email:         email,
			TrackerUserID: a.TrackerUserID,
			ActualStart:   a.ClockIn,

			NonProductiveMinutes: a.NonProductiveSeconds / 60,
			UncategorizedMinutes: a.UncategorizedSeconds / 60,
			ProductiveMinutes:    a.ProductiveSeconds / 60,
			TotalMinutes:         a.TotalSeconds / 60,
		}

		if entry != nil {
			rec.CanonicalKey = identity.Canonical(entry.TrackerUserID, entry.Email, entry.Name)
			if entry.Name != "" {
				rec.EmployeeName = entry.Name
			}
			if entry.Email != "" {
				rec.Email = entry.Email
			}
			if entry.TrackerUserID != "" {
				rec.TrackerUserID = entry.TrackerUserID
			}
			rec.ScheduledStart = entry.StartsAt
			rec.Project = entry.Project
			rec.Department = entry.Department
			rec.Team = entry.Team
			rec.Location = entry.Location
			rec.ControlManager = entry.ControlManager
		} else {
			rec.CanonicalKey = identity.Canonical(a.TrackerUserID, email, name)
		}

		rec.LateMinutes = record.LateBy(rec.ScheduledStart, rec.ActualStart)
		rec.LeaveReason = leaveByEmail[schedule.Normalize(rec.Email)]
		rec.Status = record.Classify(true, rec.LeaveReason, rec.LateMinutes, s.grace)

		add(rec)
	}

	// Leave-only records: approved leaves whose employee produced no
	// activity record this run. A leave without an email cannot be tied to
	// anyone, so it is skipped like any other unidentifiable raw entry.
	for _, l := range leaves {
		if !l.Covers(day) {
			continue
		}
		if schedule.Normalize(l.Email) == "" {
			slog.Warn("skipping leave entry without email",
				"date", day.Format("2006-01-02"), "type", l.Type)
			continue
		}
		entry := resolver.Match("", l.Email, "")
		key := identity.Canonical("", l.Email, "")
		if entry != nil {
			key = identity.Canonical(entry.TrackerUserID, entry.Email, entry.Name)
		}
		if _, ok := built[key]; ok {
			continue
		}

		rec := record.Record{
			ID:           uuid.NewString(),
			Date:         day,
			CanonicalKey: key,
			Email:        l.Email,
			LeaveReason:  l.Type,
			Status:       record.Classify(false, l.Type, 0, s.grace),
		}
		if entry != nil {
			rec.EmployeeName = entry.Name
			rec.Email = entry.Email
			rec.TrackerUserID = entry.TrackerUserID
			rec.ScheduledStart = entry.StartsAt
			rec.Project = entry.Project
			rec.Department = entry.Department
			rec.Team = entry.Team
			rec.Location = entry.Location
			rec.ControlManager = entry.ControlManager
		}

		add(rec)
	}

	// Absent records for the remaining scheduled employees.
	if includeAbsent {
		for _, e := range dir.Entries() {
			key := identity.Canonical(e.TrackerUserID, e.Email, e.Name)
			if _, ok := built[key]; ok {
				continue
			}
			add(record.Record{
				ID:             uuid.NewString(),
				Date:           day,
				CanonicalKey:   key,
				EmployeeName:   e.Name,
				Email:          e.Email,
				TrackerUserID:  e.TrackerUserID,
				ScheduledStart: e.StartsAt,
				Project:        e.Project,
				Department:     e.Department,
				Team:           e.Team,
				Location:       e.Location,
				ControlManager: e.ControlManager,
				Status:         record.Classify(false, "", 0, s.grace),
			})
		}
	}

	// Employees that vanished from every source but carry manual
	// corrections: re-insert the snapshot whole so operator work is never
	// dropped.
	var orphans []string
	for key := range snaps {
		if !consumed[key] {
			orphans = append(orphans, key)
		}
	}
	sort.Strings(orphans)
	for _, key := range orphans {
		built[key] = snaps[key].full
		order = append(order, key)
	}

	out := make([]record.Record, 0, len(order))
	for _, key := range order {
		out = append(out, built[key])
	}
	return out, len(orphans)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
