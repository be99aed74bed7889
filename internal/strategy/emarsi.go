package strategy

import (
	"fmt"

	"trading-analysis-bot/internal/market"
)

// EMARSIStrategy combines an EMA cross with an RSI momentum filter:
//   - EMA fast above EMA slow and RSI above 50 produces BUY
//   - EMA fast below EMA slow and RSI below 50 produces SELL
//   - anything else produces NO_TRADE
type EMARSIStrategy struct {
	fastPeriod int
	slowPeriod int
	rsiPeriod  int
}

// NewEMARSIStrategy creates an EMA+RSI strategy with the given periods
func NewEMARSIStrategy(fastPeriod, slowPeriod, rsiPeriod int) *EMARSIStrategy {
	if fastPeriod <= 0 {
		fastPeriod = 50
	}
	if slowPeriod <= 0 {
		slowPeriod = 200
	}
	if rsiPeriod <= 0 {
		rsiPeriod = 14
	}
	return &EMARSIStrategy{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
		rsiPeriod:  rsiPeriod,
	}
}

func (s *EMARSIStrategy) Name() string {
	return "ema_rsi"
}

// Evaluate classifies the series into a signal with indicator diagnostics
func (s *EMARSIStrategy) Evaluate(candles market.Series) (*Evaluation, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("empty candle series")
	}

	eval := &Evaluation{
		Signal:   SignalNoTrade,
		RSI:      DefaultRSI,
		EMASlope: DefaultEMASlope,
	}

	emaFast := CalculateEMASeries(candles, s.fastPeriod)
	emaSlow := CalculateEMASeries(candles, s.slowPeriod)
	if emaFast == nil || emaSlow == nil {
		// Not enough history to form a view; stay flat with defaults
		return eval, nil
	}

	eval.RSI = CalculateRSI(candles, s.rsiPeriod)

	last := len(candles) - 1
	if last >= 1 {
		eval.EMASlope = emaFast[last] - emaFast[last-1]
	}

	switch {
	case emaFast[last] > emaSlow[last] && eval.RSI > 50:
		eval.Signal = SignalBuy
	case emaFast[last] < emaSlow[last] && eval.RSI < 50:
		eval.Signal = SignalSell
	}

	return eval, nil
}
