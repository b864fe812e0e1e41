package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/attendance-sync/internal/domain/record"
	"github.com/stafftrack/attendance-sync/internal/handler/http/response"
	"github.com/stafftrack/attendance-sync/internal/pkg/validator"
	"github.com/stafftrack/attendance-sync/internal/service/monitor"
)

type AttendanceHandler struct {
	monitor *monitor.Service
}

func NewAttendanceHandler(monitor *monitor.Service) *AttendanceHandler {
	return &AttendanceHandler{monitor: monitor}
}

// RecordResponse is the wire shape of one attendance record, including the
// per-field manual flags so dashboards can mark corrected values.
type RecordResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	CanonicalKey  string `json:"canonical_key"`
	EmployeeName  string `json:"employee_name"`
	Email         string `json:"email"`
	TrackerUserID string `json:"tracker_user_id"`

	Project    string `json:"project,omitempty"`
	Department string `json:"department,omitempty"`
	Team       string `json:"team,omitempty"`
	Location   string `json:"location,omitempty"`

	ScheduledStart string `json:"scheduled_start"`
	ActualStart    string `json:"actual_start"`
	LateMinutes    int    `json:"late_minutes"`

	NonProductiveMinutes int  `json:"nonproductive_minutes"`
	UncategorizedMinutes int  `json:"uncategorized_minutes"`
	ProductiveMinutes    int  `json:"productive_minutes"`
	TotalMinutes         int  `json:"total_minutes"`
	CorrectedTotal       *int `json:"corrected_total,omitempty"`

	Status      string `json:"status"`
	LeaveReason string `json:"leave_reason,omitempty"`
	Notes       string `json:"notes,omitempty"`

	ControlManager *int `json:"control_manager,omitempty"`

	Manual record.OverrideFlags `json:"manual"`
}

func toRecordResponse(rec record.Record) RecordResponse {
	return RecordResponse{
		ID:                   rec.ID,
		Date:                 rec.Date.Format("2006-01-02"),
		CanonicalKey:         rec.CanonicalKey,
		EmployeeName:         rec.EmployeeName,
		Email:                rec.Email,
		TrackerUserID:        rec.TrackerUserID,
		Project:              rec.Project,
		Department:           rec.Department,
		Team:                 rec.Team,
		Location:             rec.Location,
		ScheduledStart:       rec.ScheduledStart,
		ActualStart:          rec.ActualStart,
		LateMinutes:          rec.LateMinutes,
		NonProductiveMinutes: rec.NonProductiveMinutes,
		UncategorizedMinutes: rec.UncategorizedMinutes,
		ProductiveMinutes:    rec.ProductiveMinutes,
		TotalMinutes:         rec.TotalMinutes,
		CorrectedTotal:       rec.CorrectedTotal,
		Status:               string(rec.Status),
		LeaveReason:          rec.LeaveReason,
		Notes:                rec.Notes,
		ControlManager:       rec.ControlManager,
		Manual:               rec.Manual,
	}
}

// List handles GET /api/v1/attendance
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := record.Filter{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	for _, p := range []struct {
		name string
		dst  **string
	}{
		{"date", &filter.Date},
		{"from", &filter.StartDate},
		{"to", &filter.EndDate},
	} {
		if v := q.Get(p.name); v != "" {
			if !validator.IsValidDate(v) {
				response.ValidationError(w, map[string]string{p.name: "must be a YYYY-MM-DD date"})
				return
			}
			*p.dst = &v
		}
	}
	if v := q.Get("status"); v != "" {
		if !record.Status(v).Valid() {
			response.ValidationError(w, map[string]string{"status": "unknown status"})
			return
		}
		filter.Status = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	records, total, err := h.monitor.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "failed to list attendance records")
		return
	}

	items := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toRecordResponse(rec))
	}

	page, limit := filter.Pagination()
	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}

// Get handles GET /api/v1/attendance/{id}
func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.ValidationError(w, map[string]string{"id": "must be a UUID"})
		return
	}

	rec, err := h.monitor.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, record.ErrRecordNotFound) {
			response.NotFound(w, "attendance record not found")
			return
		}
		response.InternalServerError(w, "failed to get attendance record")
		return
	}

	response.Success(w, toRecordResponse(rec))
}

// GetByEmployee handles GET /api/v1/attendance/by-employee
func (h *AttendanceHandler) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	dateStr := r.URL.Query().Get("date")
	details := map[string]string{}
	if validator.IsEmpty(key) {
		details["key"] = "is required"
	}
	if !validator.IsValidDate(dateStr) {
		details["date"] = "must be a YYYY-MM-DD date"
	}
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}
	date, _ := time.Parse("2006-01-02", dateStr)

	rec, err := h.monitor.GetByEmployee(r.Context(), key, date)
	if err != nil {
		if errors.Is(err, record.ErrRecordNotFound) {
			response.NotFound(w, "attendance record not found")
			return
		}
		response.InternalServerError(w, "failed to get attendance record")
		return
	}

	response.Success(w, toRecordResponse(rec))
}

// Correct handles PATCH /api/v1/attendance/{id}
func (h *AttendanceHandler) Correct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.ValidationError(w, map[string]string{"id": "must be a UUID"})
		return
	}

	var corr record.Correction
	if err := json.NewDecoder(r.Body).Decode(&corr); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	if corr.ScheduledStart != nil && *corr.ScheduledStart != "" && !validator.IsValidClock(*corr.ScheduledStart) {
		response.ValidationError(w, map[string]string{"scheduled_start": "must be HH:MM"})
		return
	}
	if corr.ActualStart != nil && *corr.ActualStart != "" && !validator.IsValidClock(*corr.ActualStart) {
		response.ValidationError(w, map[string]string{"actual_start": "must be HH:MM"})
		return
	}

	rec, err := h.monitor.Correct(r.Context(), id, corr)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrRecordNotFound):
			response.NotFound(w, "attendance record not found")
		case errors.Is(err, record.ErrInvalidStatus):
			response.ValidationError(w, map[string]string{"status": "unknown status"})
		default:
			response.BadRequest(w, err.Error(), nil)
		}
		return
	}

	response.SuccessWithMessage(w, "Record corrected", toRecordResponse(rec))
}

// ClearOverrides handles DELETE /api/v1/attendance/{id}/overrides
func (h *AttendanceHandler) ClearOverrides(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.ValidationError(w, map[string]string{"id": "must be a UUID"})
		return
	}

	var body struct {
		Fields []string `json:"fields"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "invalid request body", nil)
			return
		}
	}

	rec, err := h.monitor.ClearOverrides(r.Context(), id, body.Fields)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrRecordNotFound):
			response.NotFound(w, "attendance record not found")
		case errors.Is(err, record.ErrUnknownField):
			response.ValidationError(w, map[string]string{"fields": err.Error()})
		default:
			response.InternalServerError(w, "failed to clear overrides")
		}
		return
	}

	response.SuccessWithMessage(w, "Overrides cleared", toRecordResponse(rec))
}
