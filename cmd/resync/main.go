// Command resync recomputes attendance for one date or a date range:
//
//	resync -date 2025-08-20
//	resync -from 2025-08-01 -to 2025-08-20 -include-absent=false
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/stafftrack/attendance-sync/internal/config"
	"github.com/stafftrack/attendance-sync/internal/pkg/database"
	"github.com/stafftrack/attendance-sync/internal/pkg/hrm"
	"github.com/stafftrack/attendance-sync/internal/pkg/tracker"
	"github.com/stafftrack/attendance-sync/internal/repository/postgresql"
	"github.com/stafftrack/attendance-sync/internal/service/reconcile"
)

func main() {
	var (
		dateFlag      = flag.String("date", "", "single date to reconcile (YYYY-MM-DD)")
		fromFlag      = flag.String("from", "", "range start, inclusive (YYYY-MM-DD)")
		toFlag        = flag.String("to", "", "range end, inclusive (YYYY-MM-DD)")
		includeAbsent = flag.Bool("include-absent", true, "create explicit absent records for scheduled employees with no data")
	)
	flag.Parse()

	from, to, err := resolveRange(*dateFlag, *fromFlag, *toFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	engine := reconcile.NewService(
		db,
		postgresql.NewRecordRepository(db),
		postgresql.NewScheduleRepository(db),
		tracker.NewClient(cfg.Tracker),
		hrm.NewClient(cfg.HRM),
		cfg.Sync.GraceMinutes,
	)

	summaries, err := engine.ReconcileRange(context.Background(), from, to, *includeAbsent)
	for _, s := range summaries {
		fmt.Printf("%s: created=%d restored=%d activity=%d leaves=%d",
			s.Date, s.Created, s.Restored, s.ActivityEntries, s.LeaveEntries)
		if s.ActivityDegraded {
			fmt.Print(" (activity source failed)")
		}
		if s.LeaveDegraded {
			fmt.Print(" (leave source failed)")
		}
		fmt.Println()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func resolveRange(date, from, to string) (time.Time, time.Time, error) {
	switch {
	case date != "":
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -date: %w", err)
		}
		return d, d, nil
	case from != "" && to != "":
		f, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from: %w", err)
		}
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to: %w", err)
		}
		if t.Before(f) {
			return time.Time{}, time.Time{}, fmt.Errorf("-to is before -from")
		}
		return f, t, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("provide -date, or -from and -to")
	}
}
