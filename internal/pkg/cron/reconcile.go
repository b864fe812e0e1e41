package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stafftrack/attendance-sync/internal/service/reconcile"
)

// ReconcileJobs wires the reconciliation engine into the scheduler: once a
// day, shortly after the tracked day closes, yesterday's record set is
// recomputed from source data.
type ReconcileJobs struct {
	engine        *reconcile.Service
	runHour       int
	includeAbsent bool
}

func NewReconcileJobs(engine *reconcile.Service, runHour int, includeAbsent bool) *ReconcileJobs {
	return &ReconcileJobs{
		engine:        engine,
		runHour:       runHour,
		includeAbsent: includeAbsent,
	}
}

func (j *ReconcileJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDaily("reconcile_yesterday", j.runHour, j.ReconcileYesterday)
}

// ReconcileYesterday recomputes yesterday's record set. The scheduler fires
// it once per day, so two runs for the same date never overlap; manual
// resyncs are expected to avoid that window.
func (j *ReconcileJobs) ReconcileYesterday(ctx context.Context) error {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	slog.Info("Cron: Starting daily reconciliation", "date", yesterday.Format("2006-01-02"))

	summary, err := j.engine.Reconcile(ctx, yesterday, j.includeAbsent)
	if err != nil {
		return fmt.Errorf("daily reconciliation failed: %w", err)
	}

	slog.Info("Cron: Daily reconciliation complete",
		"date", summary.Date,
		"created", summary.Created,
		"restored", summary.Restored,
		"activity_degraded", summary.ActivityDegraded,
		"leave_degraded", summary.LeaveDegraded,
	)
	return nil
}
