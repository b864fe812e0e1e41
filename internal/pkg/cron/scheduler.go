// Package cron runs the engine's recurring work. The service has exactly
// one schedule shape, "once a day at a fixed UTC hour", so each job sleeps
// until its next firing time instead of polling on an interval tick.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job fires once per day at Hour UTC.
type Job struct {
	Name string
	Hour int
	Fn   func(ctx context.Context) error
}

type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddDaily registers a job that fires once per day at the given UTC hour.
func (s *Scheduler) AddDaily(name string, hour int, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name: name,
		Hour: hour,
		Fn:   fn,
	})
	slog.Info("Cron job registered", "name", name, "hour_utc", hour)
}

// Start begins running all registered jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob sleeps until the job's next firing time, runs it, and repeats.
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		wait := time.Until(nextRun(time.Now().UTC(), job.Hour))
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-time.After(wait):
			s.executeJob(job)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// nextRun returns the next top-of-hour instant strictly after now whose UTC
// hour is hour.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
