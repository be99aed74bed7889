package market

import (
	"context"
	"errors"
	"time"
)

// Candle represents a single OHLCV candlestick
type Candle struct {
	OpenTime  int64   `json:"open_time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	CloseTime int64   `json:"close_time"`
}

// Series is a time-ascending sequence of candles
type Series []Candle

// Last returns the most recent candle
func (s Series) Last() Candle {
	return s[len(s)-1]
}

// Tail returns the last n candles (or the whole series if shorter)
func (s Series) Tail(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Closes extracts the close prices
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, c := range s {
		closes[i] = c.Close
	}
	return closes
}

// ErrNoData indicates the provider returned no candles for the request
var ErrNoData = errors.New("no market data returned")

// Provider fetches OHLCV series for a symbol/interval pair
type Provider interface {
	FetchSeries(ctx context.Context, symbol, interval string, limit int) (Series, error)
}

// DefaultFetchLimit is the number of candles requested per evaluation
const DefaultFetchLimit = 500

// DefaultHTTPTimeout bounds every outbound market data request
const DefaultHTTPTimeout = 10 * time.Second
