package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/attendance-sync/internal/domain/record"
	"github.com/stafftrack/attendance-sync/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) record.Repository {
	return &recordRepository{db: db}
}

const recordColumns = `
	id, date, canonical_key, employee_name, email, tracker_user_id,
	project, department, team, location,
	scheduled_start, actual_start, late_minutes,
	nonproductive_minutes, uncategorized_minutes, productive_minutes, total_minutes,
	corrected_total, status, leave_reason, notes, control_manager,
	manual, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (record.Record, error) {
	var rec record.Record
	var manual []byte
	err := row.Scan(
		&rec.ID, &rec.Date, &rec.CanonicalKey, &rec.EmployeeName, &rec.Email, &rec.TrackerUserID,
		&rec.Project, &rec.Department, &rec.Team, &rec.Location,
		&rec.ScheduledStart, &rec.ActualStart, &rec.LateMinutes,
		&rec.NonProductiveMinutes, &rec.UncategorizedMinutes, &rec.ProductiveMinutes, &rec.TotalMinutes,
		&rec.CorrectedTotal, &rec.Status, &rec.LeaveReason, &rec.Notes, &rec.ControlManager,
		&manual, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return record.Record{}, err
	}
	if len(manual) > 0 {
		if err := json.Unmarshal(manual, &rec.Manual); err != nil {
			return record.Record{}, fmt.Errorf("failed to decode manual flags: %w", err)
		}
	}
	return rec, nil
}

// ListByDate implements record.Repository.
func (r *recordRepository) ListByDate(ctx context.Context, date time.Time) ([]record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + recordColumns + `
		FROM attendance_records
		WHERE date = $1
		ORDER BY employee_name ASC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query records by date: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteByDate implements record.Repository.
func (r *recordRepository) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE date = $1`, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records for date: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// BulkCreate implements record.Repository.
func (r *recordRepository) BulkCreate(ctx context.Context, records []record.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, date, canonical_key, employee_name, email, tracker_user_id,
			project, department, team, location,
			scheduled_start, actual_start, late_minutes,
			nonproductive_minutes, uncategorized_minutes, productive_minutes, total_minutes,
			corrected_total, status, leave_reason, notes, control_manager, manual
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)`

	for _, rec := range records {
		manual, err := json.Marshal(rec.Manual)
		if err != nil {
			return fmt.Errorf("failed to encode manual flags: %w", err)
		}
		_, err = q.Exec(ctx, query,
			rec.ID, rec.Date, rec.CanonicalKey, rec.EmployeeName, rec.Email, rec.TrackerUserID,
			rec.Project, rec.Department, rec.Team, rec.Location,
			rec.ScheduledStart, rec.ActualStart, rec.LateMinutes,
			rec.NonProductiveMinutes, rec.UncategorizedMinutes, rec.ProductiveMinutes, rec.TotalMinutes,
			rec.CorrectedTotal, rec.Status, rec.LeaveReason, rec.Notes, rec.ControlManager, manual,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record for %q: %w", rec.CanonicalKey, err)
		}
	}

	return nil
}

// GetByID implements record.Repository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + recordColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return record.Record{}, record.ErrRecordNotFound
		}
		return record.Record{}, fmt.Errorf("failed to get record by ID: %w", err)
	}

	return rec, nil
}

// GetByKeyAndDate implements record.Repository.
func (r *recordRepository) GetByKeyAndDate(ctx context.Context, key string, date time.Time) (*record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + recordColumns + `
		FROM attendance_records
		WHERE canonical_key = $1 AND date = $2
		LIMIT 1`

	rec, err := scanRecord(q.QueryRow(ctx, query, key, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record by key and date: %w", err)
	}

	return &rec, nil
}

// List implements record.Repository.
func (r *recordRepository) List(ctx context.Context, filter record.Filter) ([]record.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (employee_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	orderByField := "date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "employee_name"
	case "status":
		orderByField = "status"
	case "late_minutes":
		orderByField = "late_minutes"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`SELECT`+recordColumns+`
		FROM attendance_records
		WHERE %s
		ORDER BY %s %s, employee_name ASC
		LIMIT $%d OFFSET $%d`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	page, limit := filter.Pagination()
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// Update implements record.Repository.
func (r *recordRepository) Update(ctx context.Context, rec record.Record) error {
	q := GetQuerier(ctx, r.db)

	manual, err := json.Marshal(rec.Manual)
	if err != nil {
		return fmt.Errorf("failed to encode manual flags: %w", err)
	}

	query := `
		UPDATE attendance_records SET
			project = $1, department = $2, team = $3, location = $4,
			scheduled_start = $5, actual_start = $6, late_minutes = $7,
			nonproductive_minutes = $8, uncategorized_minutes = $9,
			productive_minutes = $10, total_minutes = $11,
			corrected_total = $12, status = $13, leave_reason = $14,
			notes = $15, control_manager = $16, manual = $17, updated_at = $18
		WHERE id = $19
		RETURNING id`

	var updatedID string
	err = q.QueryRow(ctx, query,
		rec.Project, rec.Department, rec.Team, rec.Location,
		rec.ScheduledStart, rec.ActualStart, rec.LateMinutes,
		rec.NonProductiveMinutes, rec.UncategorizedMinutes,
		rec.ProductiveMinutes, rec.TotalMinutes,
		rec.CorrectedTotal, rec.Status, rec.LeaveReason,
		rec.Notes, rec.ControlManager, manual, time.Now(),
		rec.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return record.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update record: %w", err)
	}

	return nil
}
