package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// TwelveDataClient fetches OHLCV data from the Twelve Data API.
// Covers forex, metals, stocks and indices - everything Binance cannot serve.
type TwelveDataClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTwelveDataClient creates a Twelve Data market data client
func NewTwelveDataClient(apiKey, baseURL string) *TwelveDataClient {
	if baseURL == "" {
		baseURL = "https://api.twelvedata.com"
	}
	return &TwelveDataClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// twelveDataIntervals maps our interval notation to Twelve Data's
var twelveDataIntervals = map[string]string{
	"1m":  "1min",
	"5m":  "5min",
	"15m": "15min",
	"30m": "30min",
	"1h":  "1h",
	"4h":  "4h",
	"1d":  "1day",
}

// NormalizeTwelveDataSymbol converts EURUSD to EUR/USD; slash-separated
// symbols pass through unchanged.
func NormalizeTwelveDataSymbol(symbol string) string {
	if strings.Contains(symbol, "/") {
		return symbol
	}
	if len(symbol) == 6 {
		return symbol[:3] + "/" + symbol[3:]
	}
	return symbol
}

// NormalizeTwelveDataInterval maps an interval string, passing unknown values through
func NormalizeTwelveDataInterval(interval string) string {
	if mapped, ok := twelveDataIntervals[interval]; ok {
		return mapped
	}
	return interval
}

type twelveDataValue struct {
	DateTime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type twelveDataResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Values  []twelveDataValue `json:"values"`
}

// FetchSeries fetches a time series from Twelve Data and returns it oldest-first
func (c *TwelveDataClient) FetchSeries(ctx context.Context, symbol, interval string, limit int) (Series, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("twelve data API key is not configured")
	}
	if limit <= 0 {
		limit = DefaultFetchLimit
	}

	params := url.Values{}
	params.Set("symbol", NormalizeTwelveDataSymbol(symbol))
	params.Set("interval", NormalizeTwelveDataInterval(interval))
	params.Set("outputsize", strconv.Itoa(limit))
	params.Set("apikey", c.apiKey)
	params.Set("format", "JSON")

	endpoint := fmt.Sprintf("%s/time_series?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building time series request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching time series: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var parsed twelveDataResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing time series: %w", err)
	}

	if parsed.Status == "error" {
		return nil, fmt.Errorf("twelve data error: %s", parsed.Message)
	}
	if len(parsed.Values) == 0 {
		return nil, ErrNoData
	}

	// Twelve Data returns newest-first; reverse into ascending order
	candles := make(Series, len(parsed.Values))
	for i, v := range parsed.Values {
		candles[len(parsed.Values)-1-i] = Candle{
			Open:  mustParse(v.Open),
			High:  mustParse(v.High),
			Low:   mustParse(v.Low),
			Close: mustParse(v.Close),
			// Volume is not published for forex pairs
			Volume: mustParse(v.Volume),
		}
	}

	return candles, nil
}

func mustParse(s string) float64 {
	if s == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
