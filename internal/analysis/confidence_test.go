package analysis

import (
	"testing"

	"trading-analysis-bot/internal/market"
)

// TestCalculateConfidence tests the weighted composite on known sub-scores
func TestCalculateConfidence(t *testing.T) {
	// 0.7*0.30 + 0.8*0.30 + 0.6*0.20 + 0.7*0.20 = 0.71
	confidence := CalculateConfidence(ConfidenceInputs{
		Structure:  0.7,
		Indicator:  0.8,
		Volume:     0.6,
		Volatility: 0.7,
	})

	if confidence != 71.0 {
		t.Errorf("Confidence should be 71.00, got %v", confidence)
	}
}

// TestCalculateConfidenceBounds tests the extremes of the composite
func TestCalculateConfidenceBounds(t *testing.T) {
	perfect := CalculateConfidence(ConfidenceInputs{Structure: 1, Indicator: 1, Volume: 1, Volatility: 1})
	if perfect != 100.0 {
		t.Errorf("All-1 sub-scores should yield 100, got %v", perfect)
	}

	zero := CalculateConfidence(ConfidenceInputs{})
	if zero != 0.0 {
		t.Errorf("All-0 sub-scores should yield 0, got %v", zero)
	}
}

// TestCalculateConfidenceRounding tests rounding to 2 decimals
func TestCalculateConfidenceRounding(t *testing.T) {
	// 0.333*0.30 + 0.333*0.30 + 0.333*0.20 + 0.333*0.20 = 0.333 -> 33.3
	confidence := CalculateConfidence(ConfidenceInputs{
		Structure:  0.333,
		Indicator:  0.333,
		Volume:     0.333,
		Volatility: 0.333,
	})

	if confidence != 33.3 {
		t.Errorf("Confidence should round to 33.3, got %v", confidence)
	}
}

// TestStaticScoreProvider tests that the provider derives the volatility
// sub-score from the series and passes the rest through
func TestStaticScoreProvider(t *testing.T) {
	provider := NewStaticScoreProvider()

	// Flat series: volatility sub-score must be zero
	candles := make(market.Series, 30)
	for i := range candles {
		candles[i] = market.Candle{High: 100.5, Low: 99.5, Close: 100}
	}

	scores := provider.Scores(candles)

	if scores.Structure != 0.7 || scores.Indicator != 0.8 || scores.Volume != 0.6 {
		t.Errorf("Static sub-scores should pass through, got %+v", scores)
	}
	if scores.Volatility != 0 {
		t.Errorf("Flat series should yield zero volatility sub-score, got %v", scores.Volatility)
	}
}
