package strategy

import (
	"trading-analysis-bot/internal/market"
)

// CalculateSMA calculates Simple Moving Average of closes
func CalculateSMA(candles market.Series, period int) float64 {
	if len(candles) < period || period <= 0 {
		return 0
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].Close
	}
	return sum / float64(period)
}

// CalculateEMASeries calculates the Exponential Moving Average for every
// candle, seeded with the first close. Returns nil when the series is
// shorter than the period.
func CalculateEMASeries(candles market.Series, period int) []float64 {
	if len(candles) < period || period <= 0 {
		return nil
	}

	multiplier := 2.0 / float64(period+1)
	ema := make([]float64, len(candles))
	ema[0] = candles[0].Close

	for i := 1; i < len(candles); i++ {
		ema[i] = (candles[i].Close-ema[i-1])*multiplier + ema[i-1]
	}
	return ema
}

// CalculateEMA calculates the latest Exponential Moving Average value
func CalculateEMA(candles market.Series, period int) float64 {
	ema := CalculateEMASeries(candles, period)
	if ema == nil {
		return 0
	}
	return ema[len(ema)-1]
}

// CalculateRSI calculates the Relative Strength Index over closes.
// Returns DefaultRSI when there is not enough data.
func CalculateRSI(candles market.Series, period int) float64 {
	if len(candles) < period+1 || period <= 0 {
		return DefaultRSI
	}

	gains := 0.0
	losses := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return DefaultRSI
		}
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
