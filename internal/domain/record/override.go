package record

// OverrideFlags marks, per overridable field, whether the current value was
// set by an operator. Flags are persisted alongside the record (one JSONB
// column) and are only ever cleared by explicit operator action; the
// reconciliation engine re-sets them when it reapplies overrides but never
// clears them.
type OverrideFlags struct {
	ScheduledStart       bool `json:"scheduled_start,omitempty"`
	ActualStart          bool `json:"actual_start,omitempty"`
	LateMinutes          bool `json:"late_minutes,omitempty"`
	NonProductiveMinutes bool `json:"nonproductive_minutes,omitempty"`
	UncategorizedMinutes bool `json:"uncategorized_minutes,omitempty"`
	ProductiveMinutes    bool `json:"productive_minutes,omitempty"`
	CorrectedTotal       bool `json:"corrected_total,omitempty"`
	Status               bool `json:"status,omitempty"`
	Notes                bool `json:"notes,omitempty"`
	LeaveReason          bool `json:"leave_reason,omitempty"`
}

// Any reports whether at least one field is flagged.
func (f OverrideFlags) Any() bool {
	return f != OverrideFlags{}
}

// Overrides carries the values of exactly the fields an operator has set.
// A nil field means "not overridden"; Apply never touches it.
type Overrides struct {
	ScheduledStart       *string
	ActualStart          *string
	LateMinutes          *int
	NonProductiveMinutes *int
	UncategorizedMinutes *int
	ProductiveMinutes    *int
	CorrectedTotal       *int
	Status               *Status
	Notes                *string
	LeaveReason          *string
}

// Empty reports whether no field is overridden.
func (o Overrides) Empty() bool {
	return o == Overrides{}
}

// Extract returns the values of the fields flagged manual on r, and only
// those.
func Extract(r Record) Overrides {
	var o Overrides
	if r.Manual.ScheduledStart {
		o.ScheduledStart = ptr(r.ScheduledStart)
	}
	if r.Manual.ActualStart {
		o.ActualStart = ptr(r.ActualStart)
	}
	if r.Manual.LateMinutes {
		o.LateMinutes = ptr(r.LateMinutes)
	}
	if r.Manual.NonProductiveMinutes {
		o.NonProductiveMinutes = ptr(r.NonProductiveMinutes)
	}
	if r.Manual.UncategorizedMinutes {
		o.UncategorizedMinutes = ptr(r.UncategorizedMinutes)
	}
	if r.Manual.ProductiveMinutes {
		o.ProductiveMinutes = ptr(r.ProductiveMinutes)
	}
	if r.Manual.CorrectedTotal && r.CorrectedTotal != nil {
		o.CorrectedTotal = ptr(*r.CorrectedTotal)
	}
	if r.Manual.Status {
		o.Status = ptr(r.Status)
	}
	if r.Manual.Notes {
		o.Notes = ptr(r.Notes)
	}
	if r.Manual.LeaveReason {
		o.LeaveReason = ptr(r.LeaveReason)
	}
	return o
}

// Apply overwrites r's fields with the override values and re-sets the
// corresponding flags, for exactly the fields present in o. It never sets a
// flag for an absent field.
func Apply(r *Record, o Overrides) {
	if o.ScheduledStart != nil {
		r.ScheduledStart = *o.ScheduledStart
		r.Manual.ScheduledStart = true
	}
	if o.ActualStart != nil {
		r.ActualStart = *o.ActualStart
		r.Manual.ActualStart = true
	}
	if o.LateMinutes != nil {
		r.LateMinutes = *o.LateMinutes
		r.Manual.LateMinutes = true
	}
	if o.NonProductiveMinutes != nil {
		r.NonProductiveMinutes = *o.NonProductiveMinutes
		r.Manual.NonProductiveMinutes = true
	}
	if o.UncategorizedMinutes != nil {
		r.UncategorizedMinutes = *o.UncategorizedMinutes
		r.Manual.UncategorizedMinutes = true
	}
	if o.ProductiveMinutes != nil {
		r.ProductiveMinutes = *o.ProductiveMinutes
		r.Manual.ProductiveMinutes = true
	}
	if o.CorrectedTotal != nil {
		v := *o.CorrectedTotal
		r.CorrectedTotal = &v
		r.Manual.CorrectedTotal = true
	}
	if o.Status != nil {
		r.Status = *o.Status
		r.Manual.Status = true
	}
	if o.Notes != nil {
		r.Notes = *o.Notes
		r.Manual.Notes = true
	}
	if o.LeaveReason != nil {
		r.LeaveReason = *o.LeaveReason
		r.Manual.LeaveReason = true
	}
}

func ptr[T any](v T) *T {
	return &v
}
