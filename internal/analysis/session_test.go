package analysis

import (
	"testing"
	"time"
)

// engineAt builds a session engine frozen at a fixed UTC time
func engineAt(year int, month time.Month, day, hour int) *SessionEngine {
	frozen := time.Date(year, month, day, hour, 30, 0, 0, time.UTC)
	return NewSessionEngine(func() time.Time { return frozen })
}

// TestIsWeekend tests the weekend closure boundaries
func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name string
		day  int
		hour int
		want bool
	}{
		{"Wednesday midday", 7, 12, false},
		{"Friday before close", 9, 21, false},
		{"Friday after close", 9, 22, true},
		{"Saturday", 10, 12, true},
		{"Sunday before open", 11, 21, true},
		{"Sunday after open", 11, 22, false},
	}

	// January 2026: the 7th is a Wednesday, the 10th a Saturday
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := engineAt(2026, time.January, tt.day, tt.hour)
			if got := engine.IsWeekend(); got != tt.want {
				t.Errorf("IsWeekend should be %v, got %v", tt.want, got)
			}
		})
	}
}

// TestActiveSessions tests session window membership per UTC hour
func TestActiveSessions(t *testing.T) {
	tests := []struct {
		hour int
		want []string
	}{
		{3, []string{"ASIA"}},
		{8, []string{"ASIA", "LONDON"}},
		{14, []string{"LONDON", "NEW_YORK"}},
		{20, []string{"NEW_YORK"}},
		{23, []string{}},
	}

	for _, tt := range tests {
		engine := engineAt(2026, time.January, 7, tt.hour)
		got := engine.ActiveSessions()

		if len(got) != len(tt.want) {
			t.Errorf("Hour %d should have %d sessions, got %v", tt.hour, len(tt.want), got)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Hour %d sessions should be %v, got %v", tt.hour, tt.want, got)
			}
		}
	}
}

// TestIsKillzone tests the London/New-York overlap window
func TestIsKillzone(t *testing.T) {
	if !engineAt(2026, time.January, 7, 13).IsKillzone() {
		t.Error("13:00 UTC should be inside the killzone")
	}
	if !engineAt(2026, time.January, 7, 16).IsKillzone() {
		t.Error("16:00 UTC should be inside the killzone")
	}
	if engineAt(2026, time.January, 7, 12).IsKillzone() {
		t.Error("12:00 UTC should be outside the killzone")
	}
	if engineAt(2026, time.January, 7, 17).IsKillzone() {
		t.Error("17:00 UTC should be outside the killzone")
	}
}

// TestIsOpen tests the combined open check
func TestIsOpen(t *testing.T) {
	if !engineAt(2026, time.January, 7, 14).IsOpen() {
		t.Error("Wednesday 14:00 UTC should be open")
	}
	if engineAt(2026, time.January, 10, 14).IsOpen() {
		t.Error("Saturday should be closed")
	}
	// Weekday but between session windows
	if engineAt(2026, time.January, 7, 23).IsOpen() {
		t.Error("Wednesday 23:00 UTC has no active session and should be closed")
	}
}

// TestStatus tests the session snapshot fields
func TestStatus(t *testing.T) {
	status := engineAt(2026, time.January, 7, 14).Status()

	if status.Weekday != "Wednesday" {
		t.Errorf("Weekday should be Wednesday, got %s", status.Weekday)
	}
	if status.Hour != 14 {
		t.Errorf("Hour should be 14, got %d", status.Hour)
	}
	if status.Weekend {
		t.Error("Wednesday should not be weekend")
	}
	if !status.Killzone {
		t.Error("14:00 UTC should be flagged as killzone")
	}
	if len(status.ActiveSessions) != 2 {
		t.Errorf("14:00 UTC should have 2 active sessions, got %v", status.ActiveSessions)
	}
}
