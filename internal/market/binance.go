package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BinanceClient fetches klines from the Binance spot API
type BinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBinanceClient creates a Binance market data client
func NewBinanceClient(baseURL string) *BinanceClient {
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	return &BinanceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// FetchSeries fetches candlestick data for a symbol
func (c *BinanceClient) FetchSeries(ctx context.Context, symbol, interval string, limit int) (Series, error) {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/api/v3/klines?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building klines request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching klines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance API error: %s", string(body))
	}

	var rawKlines [][]interface{}
	if err := json.Unmarshal(body, &rawKlines); err != nil {
		return nil, fmt.Errorf("error parsing klines: %w", err)
	}

	if len(rawKlines) == 0 {
		return nil, ErrNoData
	}

	candles := make(Series, len(rawKlines))
	for i, raw := range rawKlines {
		if len(raw) < 7 {
			return nil, fmt.Errorf("malformed kline row at index %d", i)
		}
		openTime, okOpen := raw[0].(float64)
		closeTime, okClose := raw[6].(float64)
		if !okOpen || !okClose {
			return nil, fmt.Errorf("malformed kline timestamp at index %d", i)
		}
		candles[i] = Candle{
			OpenTime:  int64(openTime),
			Open:      parseFloat(raw[1]),
			High:      parseFloat(raw[2]),
			Low:       parseFloat(raw[3]),
			Close:     parseFloat(raw[4]),
			Volume:    parseFloat(raw[5]),
			CloseTime: int64(closeTime),
		}
	}

	return candles, nil
}

// parseFloat converts Binance's string-encoded numbers to float64
func parseFloat(v interface{}) float64 {
	switch val := v.(type) {
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	case float64:
		return val
	default:
		return 0
	}
}

// binanceIntervals lists the interval strings Binance accepts
var binanceIntervals = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// SupportedInterval reports whether the interval is a known kline interval
func SupportedInterval(interval string) bool {
	_, ok := binanceIntervals[interval]
	return ok
}
