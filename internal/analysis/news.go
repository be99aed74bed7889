package analysis

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultNewsBufferMinutes is the blackout window around a high-impact event
const DefaultNewsBufferMinutes = 30

// NewsProvider supplies upcoming high-impact event timestamps. Best
// effort: implementations return an empty slice on failure, never an error.
type NewsProvider interface {
	HighImpactEvents(ctx context.Context) []time.Time
}

// ForexFactoryNews fetches this week's economic calendar from the
// ForexFactory XML feed and filters for high-impact events.
type ForexFactoryNews struct {
	feedURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewForexFactoryNews creates the calendar feed client
func NewForexFactoryNews(feedURL string, logger zerolog.Logger) *ForexFactoryNews {
	if feedURL == "" {
		feedURL = "https://nfs.faireconomy.media/ff_calendar_thisweek.xml"
	}
	return &ForexFactoryNews{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type calendarEvent struct {
	Title  string `xml:"title"`
	Impact string `xml:"impact"`
	Date   string `xml:"date"`
	Time   string `xml:"time"`
}

type calendarFeed struct {
	Events []calendarEvent `xml:"event"`
}

// HighImpactEvents returns UTC timestamps of high-impact events this week.
// Any fetch or parse failure degrades to an empty list.
func (n *ForexFactoryNews) HighImpactEvents(ctx context.Context) []time.Time {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.feedURL, nil)
	if err != nil {
		return nil
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Msg("news calendar fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn().Int("status", resp.StatusCode).Msg("news calendar fetch failed")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var feed calendarFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		n.logger.Warn().Err(err).Msg("news calendar parse failed")
		return nil
	}

	events := make([]time.Time, 0, len(feed.Events))
	for _, e := range feed.Events {
		if e.Impact != "High" {
			continue
		}
		ts, err := time.ParseInLocation("01-02-2006 15:04", e.Date+" "+e.Time, time.UTC)
		if err != nil {
			continue
		}
		events = append(events, ts)
	}
	return events
}

// IsNewsTime reports whether now falls within bufferMinutes of any
// high-impact event from the provider.
func IsNewsTime(ctx context.Context, provider NewsProvider, now time.Time, bufferMinutes int) bool {
	if provider == nil {
		return false
	}
	if bufferMinutes <= 0 {
		bufferMinutes = DefaultNewsBufferMinutes
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	for _, event := range provider.HighImpactEvents(ctx) {
		delta := event.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta <= buffer {
			return true
		}
	}
	return false
}
