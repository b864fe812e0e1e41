package record

import (
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		hasActivity bool
		leaveReason string
		lateMinutes int
		want        Status
	}{
		{"on time", true, "", 0, StatusPresent},
		{"within grace", true, "", 15, StatusPresent},
		{"past grace", true, "", 16, StatusLate},
		{"very late", true, "", 240, StatusLate},
		{"no data no leave", false, "", 0, StatusAbsent},
		{"leave without activity", false, "annual", 0, StatusLeave},
		{"leave beats late activity", true, "sick", 90, StatusLeave},
		{"leave beats present activity", true, "annual", 0, StatusLeave},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(c.hasActivity, c.leaveReason, c.lateMinutes, DefaultGraceMinutes)
			if got != c.want {
				t.Errorf("Classify(%v, %q, %d) = %q, want %q",
					c.hasActivity, c.leaveReason, c.lateMinutes, got, c.want)
			}
		})
	}
}

func TestLateBy(t *testing.T) {
	cases := []struct {
		scheduled string
		actual    string
		want      int
	}{
		{"09:00", "09:20", 20},
		{"09:00", "08:45", 0},
		{"09:00", "09:00", 0},
		{"09:00", "10:00", 60},
		{"09:00:00", "09:05:30", 5}, // seconds ignored
		{"", "09:20", 0},
		{"09:00", "", 0},
		{"morning", "09:20", 0},
		{"09:00", "9am", 0},
	}
	for _, c := range cases {
		got := LateBy(c.scheduled, c.actual)
		if got != c.want {
			t.Errorf("LateBy(%q, %q) = %d, want %d", c.scheduled, c.actual, got, c.want)
		}
	}
}

func TestClockMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"9:05", 545, true},
		{"09:30:45", 570, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ClockMinutes(c.input)
		if got != c.want || ok != c.ok {
			t.Errorf("ClockMinutes(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}
