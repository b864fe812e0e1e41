package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2025, 8, 20, 0, 30, 0, 0, time.UTC),
			hour: 1,
			want: time.Date(2025, 8, 20, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour rolls to tomorrow",
			now:  time.Date(2025, 8, 20, 1, 0, 0, 0, time.UTC),
			hour: 1,
			want: time.Date(2025, 8, 21, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "already past today's hour",
			now:  time.Date(2025, 8, 20, 13, 45, 10, 0, time.UTC),
			hour: 1,
			want: time.Date(2025, 8, 21, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight hour from late evening",
			now:  time.Date(2025, 8, 20, 23, 59, 0, 0, time.UTC),
			hour: 0,
			want: time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, nextRun(c.now, c.hour))
		})
	}
}

func TestAddDailyRegistersJob(t *testing.T) {
	s := NewScheduler()
	defer s.cancel()

	s.AddDaily("reconcile_yesterday", 3, func(ctx context.Context) error { return nil })

	require.Len(t, s.jobs, 1)
	assert.Equal(t, "reconcile_yesterday", s.jobs[0].Name)
	assert.Equal(t, 3, s.jobs[0].Hour)
}

func TestExecuteJobRunsWithSchedulerContext(t *testing.T) {
	s := NewScheduler()
	defer s.cancel()

	var got context.Context
	job := Job{Name: "noop", Hour: 1, Fn: func(ctx context.Context) error {
		got = ctx
		return nil
	}}
	s.executeJob(job)

	require.NotNil(t, got)
	assert.NoError(t, got.Err())

	s.cancel()
	assert.Error(t, got.Err())
}
