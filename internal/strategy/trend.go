package strategy

import "trading-analysis-bot/internal/market"

// TrendClassifier determines market bias from price vs a moving average.
// Classification only, not prediction.
type TrendClassifier struct {
	maPeriod int
}

// NewTrendClassifier creates a trend classifier over the given MA period
func NewTrendClassifier(maPeriod int) *TrendClassifier {
	if maPeriod <= 0 {
		maPeriod = 50
	}
	return &TrendClassifier{maPeriod: maPeriod}
}

// Classify returns the trend bias of the series:
// price above MA is Bullish, below is Bearish, otherwise Ranging.
func (tc *TrendClassifier) Classify(candles market.Series) Trend {
	if len(candles) < tc.maPeriod {
		return TrendRanging
	}

	ma := CalculateSMA(candles, tc.maPeriod)
	lastClose := candles.Last().Close

	switch {
	case lastClose > ma:
		return TrendBullish
	case lastClose < ma:
		return TrendBearish
	default:
		return TrendRanging
	}
}
