package record

// Filter narrows record listings.
type Filter struct {
	Date      *string // "2006-01-02"
	StartDate *string
	EndDate   *string
	Status    *string
	Search    *string // matches employee name or email
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination returns the page and limit to query with. Zero and negative
// values fall back to the defaults so they never reach LIMIT/OFFSET.
func (f Filter) Pagination() (page, limit int) {
	page, limit = f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return page, limit
}

// Correction is an operator edit of one record. Every non-nil field is
// written and flagged manual.
type Correction struct {
	ScheduledStart       *string `json:"scheduled_start"`
	ActualStart          *string `json:"actual_start"`
	LateMinutes          *int    `json:"late_minutes"`
	NonProductiveMinutes *int    `json:"nonproductive_minutes"`
	UncategorizedMinutes *int    `json:"uncategorized_minutes"`
	ProductiveMinutes    *int    `json:"productive_minutes"`
	CorrectedTotal       *int    `json:"corrected_total"`
	Status               *string `json:"status"`
	Notes                *string `json:"notes"`
	LeaveReason          *string `json:"leave_reason"`
}

// Overrides converts the correction into an override set.
func (c Correction) Overrides() (Overrides, error) {
	o := Overrides{
		ScheduledStart:       c.ScheduledStart,
		ActualStart:          c.ActualStart,
		LateMinutes:          c.LateMinutes,
		NonProductiveMinutes: c.NonProductiveMinutes,
		UncategorizedMinutes: c.UncategorizedMinutes,
		ProductiveMinutes:    c.ProductiveMinutes,
		CorrectedTotal:       c.CorrectedTotal,
		Notes:                c.Notes,
		LeaveReason:          c.LeaveReason,
	}
	if c.Status != nil {
		s := Status(*c.Status)
		if !s.Valid() {
			return Overrides{}, ErrInvalidStatus
		}
		o.Status = &s
	}
	return o, nil
}
