package analysis

import (
	"math"
	"testing"

	"trading-analysis-bot/internal/market"
)

// constantRangeCandles builds candles with a fixed high-low range and a
// fixed close-to-close step so volatility values are exact.
func constantRangeCandles(n int, start, step, halfRange float64) market.Series {
	candles := make(market.Series, n)
	for i := 0; i < n; i++ {
		close := start + float64(i)*step
		candles[i] = market.Candle{
			Open:  close - step/2,
			High:  close + halfRange,
			Low:   close - halfRange,
			Close: close,
		}
	}
	return candles
}

// TestCalculateATR tests ATR on candles with a constant true range
func TestCalculateATR(t *testing.T) {
	// Each candle spans 0.002 and gaps never exceed the range
	candles := constantRangeCandles(30, 1.1000, 0.001, 0.001)

	atr := CalculateATR(candles, 14)

	if math.Abs(atr-0.002) > 1e-9 {
		t.Errorf("ATR should be 0.002, got %v", atr)
	}
}

// TestCalculateATRGapped tests that gaps larger than the candle range
// dominate the true range
func TestCalculateATRGapped(t *testing.T) {
	candles := make(market.Series, 16)
	for i := 0; i < 16; i++ {
		// Close jumps 10 per candle while the candle itself spans 2
		base := 100.0 + float64(i)*10
		candles[i] = market.Candle{High: base + 1, Low: base - 1, Close: base}
	}

	atr := CalculateATR(candles, 14)

	// True range per candle is |high - prevClose| = 11
	if math.Abs(atr-11.0) > 1e-9 {
		t.Errorf("Gapped ATR should be 11.0, got %v", atr)
	}
}

// TestCalculateATRInsufficientData tests that short series return zero
func TestCalculateATRInsufficientData(t *testing.T) {
	candles := constantRangeCandles(14, 1.1, 0.001, 0.001)

	if atr := CalculateATR(candles, 14); atr != 0 {
		t.Errorf("ATR on %d candles with period 14 should be 0, got %v", len(candles), atr)
	}
}

// TestCalculateRangeVolatility tests the mean high-low range measure
func TestCalculateRangeVolatility(t *testing.T) {
	candles := constantRangeCandles(20, 1.1, 0.001, 0.0015)

	vol := CalculateRangeVolatility(candles, 14)

	// Mean range 0.003, rounded to 4 decimals
	if vol != 0.003 {
		t.Errorf("Range volatility should be 0.003, got %v", vol)
	}
}

// TestCalculateRangeVolatilityRounding tests the 4-decimal rounding
func TestCalculateRangeVolatilityRounding(t *testing.T) {
	candles := make(market.Series, 14)
	for i := range candles {
		// Range 0.00123456 per candle
		candles[i] = market.Candle{High: 1.10123456, Low: 1.1, Close: 1.1005}
	}

	vol := CalculateRangeVolatility(candles, 14)

	if vol != 0.0012 {
		t.Errorf("Range volatility should round to 0.0012, got %v", vol)
	}
}

// TestNormalizedVolatilityScoreCapped tests that wild series cap at 1.0
func TestNormalizedVolatilityScoreCapped(t *testing.T) {
	candles := make(market.Series, 30)
	for i := range candles {
		// Alternate +20% / -20% returns
		price := 100.0
		if i%2 == 1 {
			price = 120.0
		}
		candles[i] = market.Candle{High: price + 1, Low: price - 1, Close: price}
	}

	score := NormalizedVolatilityScore(candles, 14)

	if score != 1.0 {
		t.Errorf("Volatile series should saturate the score at 1.0, got %v", score)
	}
}

// TestNormalizedVolatilityScoreFlat tests that a flat series scores zero
func TestNormalizedVolatilityScoreFlat(t *testing.T) {
	candles := make(market.Series, 30)
	for i := range candles {
		candles[i] = market.Candle{High: 100.5, Low: 99.5, Close: 100}
	}

	if score := NormalizedVolatilityScore(candles, 14); score != 0 {
		t.Errorf("Flat series should score 0, got %v", score)
	}
}
