package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReturnsOnlyFlaggedFields(t *testing.T) {
	corrected := 480
	rec := Record{
		ScheduledStart: "09:00",
		ActualStart:    "09:45",
		LateMinutes:    45,
		Status:         StatusLate,
		Notes:          "train strike",
		CorrectedTotal: &corrected,
		Manual: OverrideFlags{
			ActualStart: true,
			Notes:       true,
		},
	}

	o := Extract(rec)

	require.NotNil(t, o.ActualStart)
	assert.Equal(t, "09:45", *o.ActualStart)
	require.NotNil(t, o.Notes)
	assert.Equal(t, "train strike", *o.Notes)

	assert.Nil(t, o.ScheduledStart)
	assert.Nil(t, o.LateMinutes)
	assert.Nil(t, o.Status)
	assert.Nil(t, o.CorrectedTotal)
}

func TestExtractEmptyWhenNothingFlagged(t *testing.T) {
	o := Extract(Record{ScheduledStart: "09:00", Status: StatusPresent})
	assert.True(t, o.Empty())
}

func TestApplySetsExactlyThePresentFields(t *testing.T) {
	candidate := Record{
		ScheduledStart: "09:00",
		ActualStart:    "09:10",
		LateMinutes:    10,
		Status:         StatusPresent,
	}

	actual := "08:30"
	status := StatusLeave
	Apply(&candidate, Overrides{ActualStart: &actual, Status: &status})

	assert.Equal(t, "08:30", candidate.ActualStart)
	assert.Equal(t, StatusLeave, candidate.Status)
	assert.True(t, candidate.Manual.ActualStart)
	assert.True(t, candidate.Manual.Status)

	// Untouched fields keep their computed values and stay unflagged.
	assert.Equal(t, "09:00", candidate.ScheduledStart)
	assert.Equal(t, 10, candidate.LateMinutes)
	assert.False(t, candidate.Manual.ScheduledStart)
	assert.False(t, candidate.Manual.LateMinutes)
}

func TestApplyEmptyOverridesIsNoop(t *testing.T) {
	candidate := Record{Status: StatusPresent, TotalMinutes: 400}
	Apply(&candidate, Overrides{})

	assert.Equal(t, StatusPresent, candidate.Status)
	assert.Equal(t, 400, candidate.TotalMinutes)
	assert.False(t, candidate.Manual.Any())
}

func TestExtractApplyRoundTrip(t *testing.T) {
	corrected := 510
	original := Record{
		LateMinutes:    30,
		CorrectedTotal: &corrected,
		Manual: OverrideFlags{
			LateMinutes:    true,
			CorrectedTotal: true,
		},
	}

	o := Extract(original)

	recomputed := Record{LateMinutes: 5, TotalMinutes: 460}
	Apply(&recomputed, o)

	assert.Equal(t, 30, recomputed.LateMinutes)
	require.NotNil(t, recomputed.CorrectedTotal)
	assert.Equal(t, 510, *recomputed.CorrectedTotal)
	assert.True(t, recomputed.Manual.LateMinutes)
	assert.True(t, recomputed.Manual.CorrectedTotal)
	// The recomputed total itself is not overridden.
	assert.Equal(t, 460, recomputed.TotalMinutes)
	assert.False(t, recomputed.Manual.ProductiveMinutes)
}

func TestCorrectionOverridesRejectsUnknownStatus(t *testing.T) {
	bad := "vacationing"
	_, err := Correction{Status: &bad}.Overrides()
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
