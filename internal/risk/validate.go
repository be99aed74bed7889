package risk

import (
	"math"

	"trading-analysis-bot/internal/strategy"
)

// DefaultMinRR is the minimum acceptable reward:risk ratio
const DefaultMinRR = 2.0

// ValidateTrade checks the structural validity of a proposed trade:
// flat signals are rejected, counter-trend trades are rejected, and the
// reward:risk ratio must reach minRR. Zero risk is always invalid.
func ValidateTrade(
	signal strategy.Signal,
	trend strategy.Trend,
	entry, stopLoss, takeProfit float64,
	minRR float64,
) bool {
	if signal.IsFlat() {
		return false
	}

	// Counter-trend filter
	if signal == strategy.SignalBuy && trend == strategy.TrendBearish {
		return false
	}
	if signal == strategy.SignalSell && trend == strategy.TrendBullish {
		return false
	}

	if minRR <= 0 {
		minRR = DefaultMinRR
	}

	risk := math.Abs(entry - stopLoss)
	reward := math.Abs(takeProfit - entry)

	if risk == 0 {
		return false
	}

	return reward/risk >= minRR
}
