package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubNews struct {
	events []time.Time
}

func (s *stubNews) HighImpactEvents(ctx context.Context) []time.Time {
	return s.events
}

// TestIsNewsTime tests the blackout window around high-impact events
func TestIsNewsTime(t *testing.T) {
	now := time.Date(2026, time.January, 7, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event time.Time
		want  bool
	}{
		{"event 10 minutes ahead", now.Add(10 * time.Minute), true},
		{"event 10 minutes ago", now.Add(-10 * time.Minute), true},
		{"event exactly at the buffer edge", now.Add(30 * time.Minute), true},
		{"event beyond the buffer", now.Add(31 * time.Minute), false},
		{"event long past", now.Add(-2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubNews{events: []time.Time{tt.event}}
			if got := IsNewsTime(context.Background(), provider, now, 30); got != tt.want {
				t.Errorf("IsNewsTime should be %v, got %v", tt.want, got)
			}
		})
	}
}

// TestIsNewsTimeNoProvider tests that a missing provider never blocks
func TestIsNewsTimeNoProvider(t *testing.T) {
	now := time.Now().UTC()
	if IsNewsTime(context.Background(), nil, now, 30) {
		t.Error("Nil provider should never report a news blackout")
	}
}

// TestHighImpactEvents tests calendar parsing and impact filtering
func TestHighImpactEvents(t *testing.T) {
	feed := `<?xml version="1.0" encoding="utf-8"?>
<weeklyevents>
  <event>
    <title>Non-Farm Payrolls</title>
    <impact>High</impact>
    <date>01-09-2026</date>
    <time>13:30</time>
  </event>
  <event>
    <title>Retail Sales</title>
    <impact>Medium</impact>
    <date>01-08-2026</date>
    <time>10:00</time>
  </event>
</weeklyevents>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed))
	}))
	defer server.Close()

	provider := NewForexFactoryNews(server.URL, zerolog.Nop())
	events := provider.HighImpactEvents(context.Background())

	if len(events) != 1 {
		t.Fatalf("Should keep only the high-impact event, got %d", len(events))
	}

	want := time.Date(2026, time.January, 9, 13, 30, 0, 0, time.UTC)
	if !events[0].Equal(want) {
		t.Errorf("Event time should be %v, got %v", want, events[0])
	}
}

// TestHighImpactEventsFeedFailure tests degradation to an empty list
func TestHighImpactEventsFeedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewForexFactoryNews(server.URL, zerolog.Nop())

	if events := provider.HighImpactEvents(context.Background()); len(events) != 0 {
		t.Errorf("Feed failure should degrade to no events, got %d", len(events))
	}
}
