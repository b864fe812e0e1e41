package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitNameEmail(t *testing.T) {
	cases := []struct {
		input     string
		wantName  string
		wantEmail string
	}{
		{"Ada Byron, ada@example.com", "Ada Byron", "ada@example.com"},
		{"Byron, Ada, ada@example.com", "Byron, Ada", "ada@example.com"},
		{"Ada Byron", "Ada Byron", ""},
		{"ada@example.com", "", "ada@example.com"},
		{"Ada Byron, no-email-here", "Ada Byron, no-email-here", ""},
		{"  Ada Byron ,  ada@example.com  ", "Ada Byron", "ada@example.com"},
		{"", "", ""},
	}
	for _, c := range cases {
		name, email := ActivityEntry{NameEmail: c.input}.SplitNameEmail()
		assert.Equal(t, c.wantName, name, "name for %q", c.input)
		assert.Equal(t, c.wantEmail, email, "email for %q", c.input)
	}
}

func TestActivityEntryHasIdentity(t *testing.T) {
	assert.True(t, ActivityEntry{TrackerUserID: "42"}.HasIdentity())
	assert.True(t, ActivityEntry{NameEmail: "ada@example.com"}.HasIdentity())
	assert.True(t, ActivityEntry{NameEmail: "Ada Byron"}.HasIdentity())
	assert.False(t, ActivityEntry{}.HasIdentity())
}

func TestLeaveEntryCovers(t *testing.T) {
	leave := LeaveEntry{
		Email:     "ada@example.com",
		Type:      "annual",
		StartDate: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, leave.Covers(time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, leave.Covers(time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, leave.Covers(time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, leave.Covers(time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, leave.Covers(time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)))

	// Mid-day timestamps still count as the calendar date.
	assert.True(t, leave.Covers(time.Date(2025, 8, 12, 15, 30, 0, 0, time.UTC)))
}

func TestSingleDayLeaveCovers(t *testing.T) {
	day := time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC)
	leave := LeaveEntry{StartDate: day, EndDate: day}
	assert.True(t, leave.Covers(day))
	assert.False(t, leave.Covers(day.AddDate(0, 0, 1)))
}
