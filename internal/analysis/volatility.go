package analysis

import (
	"math"

	"trading-analysis-bot/internal/market"
)

// DefaultATRPeriod is the lookback for volatility measures
const DefaultATRPeriod = 14

// CalculateATR calculates Average True Range over the last period candles.
// True range per candle is max(high-low, |high-prevClose|, |low-prevClose|).
// Returns 0 when there is not enough data.
func CalculateATR(candles market.Series, period int) float64 {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	if len(candles) < period+1 {
		return 0
	}

	trSum := 0.0
	startIdx := len(candles) - period

	for i := startIdx; i < len(candles); i++ {
		high := candles[i].High
		low := candles[i].Low
		prevClose := candles[i-1].Close

		tr := math.Max(
			high-low,
			math.Max(
				math.Abs(high-prevClose),
				math.Abs(low-prevClose),
			),
		)

		trSum += tr
	}

	return trSum / float64(period)
}

// CalculateRangeVolatility estimates volatility as the mean high-low range
// over the last period candles, rounded to 4 decimals. This is the raw
// price-scale measure the recheck engine compares against its threshold.
func CalculateRangeVolatility(candles market.Series, period int) float64 {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	if len(candles) < period {
		return 0
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].High - candles[i].Low
	}

	return math.Round(sum/float64(period)*10000) / 10000
}

// NormalizedVolatilityScore computes a 0-1 volatility score from the
// standard deviation of close-to-close returns, capped at 1.0. It feeds
// the confidence composite only and is not interchangeable with the
// price-scale measures above.
func NormalizedVolatilityScore(candles market.Series, period int) float64 {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	if len(candles) < period+1 {
		return 0
	}

	returns := make([]float64, 0, period)
	for i := len(candles) - period; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (candles[i].Close-prev)/prev)
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	// Scale so that ~1% return stddev saturates the score
	score := math.Sqrt(variance) * 100
	return math.Min(score, 1.0)
}
