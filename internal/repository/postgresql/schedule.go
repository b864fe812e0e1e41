package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stafftrack/attendance-sync/internal/domain/schedule"
	"github.com/stafftrack/attendance-sync/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

// ListAll implements schedule.Repository.
func (s *scheduleRepository) ListAll(ctx context.Context) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, email, tracker_user_id, starts_at,
			   location, project, department, team, control_manager,
			   excluded, shift_note, aliases, manual, created_at, updated_at
		FROM schedule_entries
		ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []schedule.Entry
	for rows.Next() {
		var e schedule.Entry
		var aliases, manual []byte
		err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.TrackerUserID, &e.StartsAt,
			&e.Location, &e.Project, &e.Department, &e.Team, &e.ControlManager,
			&e.Excluded, &e.ShiftNote, &aliases, &manual, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		if len(aliases) > 0 {
			if err := json.Unmarshal(aliases, &e.Aliases); err != nil {
				return nil, fmt.Errorf("failed to decode aliases for %q: %w", e.Name, err)
			}
		}
		if len(manual) > 0 {
			if err := json.Unmarshal(manual, &e.Manual); err != nil {
				return nil, fmt.Errorf("failed to decode manual flags for %q: %w", e.Name, err)
			}
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
