package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/stafftrack/attendance-sync/internal/config"
	appHTTP "github.com/stafftrack/attendance-sync/internal/handler/http"
	"github.com/stafftrack/attendance-sync/internal/pkg/cron"
	"github.com/stafftrack/attendance-sync/internal/pkg/database"
	"github.com/stafftrack/attendance-sync/internal/pkg/hrm"
	"github.com/stafftrack/attendance-sync/internal/pkg/tracker"
	"github.com/stafftrack/attendance-sync/internal/repository/postgresql"
	"github.com/stafftrack/attendance-sync/internal/service/monitor"
	"github.com/stafftrack/attendance-sync/internal/service/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewRecordRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	trackerClient := tracker.NewClient(cfg.Tracker)
	hrmClient := hrm.NewClient(cfg.HRM)

	engine := reconcile.NewService(
		db,
		recordRepo,
		scheduleRepo,
		trackerClient,
		hrmClient,
		cfg.Sync.GraceMinutes,
	)
	monitorService := monitor.NewService(recordRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(monitorService)
	syncHandler := appHTTP.NewSyncHandler(engine, cfg.Sync.IncludeAbsent)

	router := appHTTP.NewRouter(attendanceHandler, syncHandler, cfg.App.Env)

	scheduler := cron.NewScheduler()
	cron.NewReconcileJobs(engine, cfg.Sync.RunHour, cfg.Sync.IncludeAbsent).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- http.ListenAndServe(port, router)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		fmt.Println("Server error:", err)
	case <-quit:
		fmt.Println("Shutting down")
	}
}
