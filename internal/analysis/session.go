package analysis

import "time"

// SessionWindow is a half-open UTC hour range [Start, End)
type SessionWindow struct {
	Name  string
	Start int
	End   int
}

// Major forex sessions in UTC hours
var Sessions = []SessionWindow{
	{Name: "ASIA", Start: 0, End: 9},
	{Name: "LONDON", Start: 7, End: 16},
	{Name: "NEW_YORK", Start: 13, End: 22},
}

// MarketStatus is a snapshot of the session state at one instant
type MarketStatus struct {
	UTCTime        string   `json:"utc_time"`
	Weekday        string   `json:"weekday"`
	Hour           int      `json:"hour"`
	Weekend        bool     `json:"weekend"`
	ActiveSessions []string `json:"active_sessions"`
	Killzone       bool     `json:"killzone"`
}

// SessionEngine answers whether markets are open at a given UTC time.
// The clock is injectable for tests; weekend boundaries are configurable.
type SessionEngine struct {
	now            func() time.Time
	fridayClose    int // UTC hour from which Friday counts as closed
	sundayOpen     int // UTC hour before which Sunday counts as closed
	killzoneStart  int
	killzoneEnd    int
}

// NewSessionEngine creates a session engine with default market hours
func NewSessionEngine(clock func() time.Time) *SessionEngine {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &SessionEngine{
		now:           clock,
		fridayClose:   22,
		sundayOpen:    22,
		killzoneStart: 13,
		killzoneEnd:   16,
	}
}

// IsWeekend reports whether the market is inside the weekend closure:
// all of Saturday, Sunday before session open, Friday after session close.
func (se *SessionEngine) IsWeekend() bool {
	now := se.now().UTC()
	wd := now.Weekday()
	hr := now.Hour()

	switch wd {
	case time.Saturday:
		return true
	case time.Sunday:
		return hr < se.sundayOpen
	case time.Friday:
		return hr >= se.fridayClose
	}
	return false
}

// ActiveSessions returns the names of sessions active at the current hour
func (se *SessionEngine) ActiveSessions() []string {
	hour := se.now().UTC().Hour()

	active := make([]string, 0, len(Sessions))
	for _, s := range Sessions {
		if s.Start <= hour && hour < s.End {
			active = append(active, s.Name)
		}
	}
	return active
}

// IsKillzone reports whether now is inside the London/New-York overlap
func (se *SessionEngine) IsKillzone() bool {
	hour := se.now().UTC().Hour()
	return se.killzoneStart <= hour && hour <= se.killzoneEnd
}

// IsOpen reports whether evaluation should proceed: not weekend and at
// least one session window active.
func (se *SessionEngine) IsOpen() bool {
	return !se.IsWeekend() && len(se.ActiveSessions()) > 0
}

// Status returns the full session snapshot for the status endpoint
func (se *SessionEngine) Status() MarketStatus {
	now := se.now().UTC()
	return MarketStatus{
		UTCTime:        now.Format(time.RFC3339),
		Weekday:        now.Weekday().String(),
		Hour:           now.Hour(),
		Weekend:        se.IsWeekend(),
		ActiveSessions: se.ActiveSessions(),
		Killzone:       se.IsKillzone(),
	}
}
