// Package monitor is the read/correction side of the persisted attendance
// output: listing records for dashboards and applying operator corrections.
// A corrected field is flagged manual so the next reconciliation run carries
// it through the recompute unchanged.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stafftrack/attendance-sync/internal/domain/record"
)

type Service struct {
	records record.Repository
}

func NewService(records record.Repository) *Service {
	return &Service{records: records}
}

// List returns records matching the filter plus the total count.
func (s *Service) List(ctx context.Context, filter record.Filter) ([]record.Record, int64, error) {
	return s.records.List(ctx, filter)
}

// Get retrieves one record by id.
func (s *Service) Get(ctx context.Context, id string) (record.Record, error) {
	return s.records.GetByID(ctx, id)
}

// GetByEmployee retrieves one employee's record for a date by canonical key.
func (s *Service) GetByEmployee(ctx context.Context, key string, date time.Time) (record.Record, error) {
	rec, err := s.records.GetByKeyAndDate(ctx, key, date)
	if err != nil {
		return record.Record{}, err
	}
	if rec == nil {
		return record.Record{}, record.ErrRecordNotFound
	}
	return *rec, nil
}

// Correct applies an operator edit: every field present in the correction
// is written and flagged manual, so recomputation leaves it alone.
func (s *Service) Correct(ctx context.Context, id string, corr record.Correction) (record.Record, error) {
	overrides, err := corr.Overrides()
	if err != nil {
		return record.Record{}, err
	}
	if overrides.Empty() {
		return record.Record{}, fmt.Errorf("correction contains no fields")
	}

	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return record.Record{}, err
	}

	record.Apply(&rec, overrides)

	if err := s.records.Update(ctx, rec); err != nil {
		return record.Record{}, fmt.Errorf("failed to save correction: %w", err)
	}

	slog.Info("record corrected", "id", rec.ID, "key", rec.CanonicalKey,
		"date", rec.Date.Format("2006-01-02"))
	return rec, nil
}

// ClearOverrides drops override flags for a record: the named fields, or
// every flag when fields is empty. Values stay as they are; the next run
// recomputes the unflagged fields from source data.
func (s *Service) ClearOverrides(ctx context.Context, id string, fields []string) (record.Record, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return record.Record{}, err
	}

	if len(fields) == 0 {
		rec.Manual = record.OverrideFlags{}
	} else {
		for _, field := range fields {
			if err := clearFlag(&rec.Manual, field); err != nil {
				return record.Record{}, err
			}
		}
	}

	if err := s.records.Update(ctx, rec); err != nil {
		return record.Record{}, fmt.Errorf("failed to clear overrides: %w", err)
	}

	return rec, nil
}

func clearFlag(f *record.OverrideFlags, field string) error {
	switch field {
	case "scheduled_start":
		f.ScheduledStart = false
	case "actual_start":
		f.ActualStart = false
	case "late_minutes":
		f.LateMinutes = false
	case "nonproductive_minutes":
		f.NonProductiveMinutes = false
	case "uncategorized_minutes":
		f.UncategorizedMinutes = false
	case "productive_minutes":
		f.ProductiveMinutes = false
	case "corrected_total":
		f.CorrectedTotal = false
	case "status":
		f.Status = false
	case "notes":
		f.Notes = false
	case "leave_reason":
		f.LeaveReason = false
	default:
		return fmt.Errorf("%w: %q", record.ErrUnknownField, field)
	}
	return nil
}
