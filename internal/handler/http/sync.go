package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stafftrack/attendance-sync/internal/handler/http/response"
	"github.com/stafftrack/attendance-sync/internal/pkg/validator"
	"github.com/stafftrack/attendance-sync/internal/service/reconcile"
)

type SyncHandler struct {
	engine        *reconcile.Service
	includeAbsent bool // default when the request leaves it unset
}

func NewSyncHandler(engine *reconcile.Service, includeAbsent bool) *SyncHandler {
	return &SyncHandler{engine: engine, includeAbsent: includeAbsent}
}

type syncRequest struct {
	Date          string `json:"date"`
	From          string `json:"from"`
	To            string `json:"to"`
	IncludeAbsent *bool  `json:"include_absent"`
}

// Resync handles POST /api/v1/sync: an administrative recompute of one date
// or a date range, processed day by day.
func (h *SyncHandler) Resync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	includeAbsent := h.includeAbsent
	if req.IncludeAbsent != nil {
		includeAbsent = *req.IncludeAbsent
	}

	var from, to string
	switch {
	case req.Date != "":
		from, to = req.Date, req.Date
	case req.From != "" && req.To != "":
		from, to = req.From, req.To
	default:
		response.ValidationError(w, map[string]string{
			"date": "provide either date, or from and to",
		})
		return
	}

	details := map[string]string{}
	if !validator.IsValidDate(from) {
		details["from"] = "must be a YYYY-MM-DD date"
	}
	if !validator.IsValidDate(to) {
		details["to"] = "must be a YYYY-MM-DD date"
	}
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	start, _ := time.Parse("2006-01-02", from)
	end, _ := time.Parse("2006-01-02", to)
	if end.Before(start) {
		response.ValidationError(w, map[string]string{"to": "must not be before from"})
		return
	}

	summaries, err := h.engine.ReconcileRange(r.Context(), start, end, includeAbsent)
	if err != nil {
		// Partial results are still reported: completed days are committed.
		response.InternalServerError(w, err.Error())
		return
	}

	response.SuccessWithMessage(w, "Reconciliation complete", summaries)
}
