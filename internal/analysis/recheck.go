package analysis

import (
	"math"

	"trading-analysis-bot/internal/strategy"
)

// MarketState classifies why a trade was not allowed
type MarketState string

const (
	StateTrendMismatch   MarketState = "TREND_MISMATCH"
	StateRanging         MarketState = "RANGING"
	StateLowVolatility   MarketState = "LOW_VOLATILITY"
	StateOverextended    MarketState = "OVEREXTENDED"
	StatePullbackPending MarketState = "PULLBACK_PENDING"
	StateBreakoutSetup   MarketState = "BREAKOUT_SETUP"
	StateChoppyHighVol   MarketState = "CHOPPY_HIGH_VOL"
)

// DefaultATRThreshold separates dead markets from tradable volatility
const DefaultATRThreshold = 0.001

// timeframeMinutes maps an interval string to its duration in minutes
var timeframeMinutes = map[string]int{
	"1m":  1,
	"5m":  5,
	"15m": 15,
	"30m": 30,
	"1h":  60,
	"4h":  240,
	"1d":  1440,
}

// stateToCandles maps each market state to the candles to wait before
// the next evaluation is meaningful
var stateToCandles = map[MarketState]int{
	StateTrendMismatch:   2,
	StateRanging:         3,
	StateLowVolatility:   4,
	StateOverextended:    2,
	StatePullbackPending: 1,
	StateBreakoutSetup:   1,
	StateChoppyHighVol:   5,
}

var stateHints = map[MarketState]string{
	StateTrendMismatch:   "Wait for trend and signal alignment",
	StateRanging:         "Wait for breakout or volatility expansion",
	StateLowVolatility:   "Wait for momentum or session open",
	StateOverextended:    "Wait for pullback toward EMA",
	StatePullbackPending: "Recheck after next candle close",
	StateBreakoutSetup:   "Monitor closely at candle close",
	StateChoppyHighVol:   "Let market stabilize before trading",
}

// RecheckAdvisory tells the caller when a blocked setup is worth another look
type RecheckAdvisory struct {
	MarketState          MarketState `json:"market_state"`
	RecheckAfterCandles  int         `json:"recheck_after_candles"`
	RecheckTimeframe     string      `json:"recheck_timeframe"`
	EstimatedWaitMinutes int         `json:"estimated_wait_minutes"`
	NextCheckHint        string      `json:"next_check_hint"`
}

// RecheckEngine classifies blocked evaluations into a market state and
// derives the wait before rechecking. Stateless: every call computes a
// fresh state from its inputs only.
type RecheckEngine struct {
	atrThreshold float64
}

// NewRecheckEngine creates a recheck engine with the given ATR threshold
func NewRecheckEngine(atrThreshold float64) *RecheckEngine {
	if atrThreshold <= 0 {
		atrThreshold = DefaultATRThreshold
	}
	return &RecheckEngine{atrThreshold: atrThreshold}
}

// DetermineState decides why a trade is not allowed. Nil diagnostics mean
// the indicator could not be computed; the engine then fails safe to
// RANGING. First matching rule wins.
func (re *RecheckEngine) DetermineState(
	signal strategy.Signal,
	trend strategy.Trend,
	rsi, volatility, emaSlope *float64,
) MarketState {
	// No reliable data: stay out
	if rsi == nil || volatility == nil || emaSlope == nil {
		return StateRanging
	}

	if *volatility > re.atrThreshold*3 && math.Abs(*emaSlope) < re.atrThreshold {
		return StateChoppyHighVol
	}

	if signal.IsDirectional() {
		if (signal == strategy.SignalBuy && trend != strategy.TrendBullish) ||
			(signal == strategy.SignalSell && trend != strategy.TrendBearish) {
			return StateTrendMismatch
		}
	}

	if *volatility < re.atrThreshold {
		return StateLowVolatility
	}

	if *rsi >= 70 || *rsi <= 30 {
		return StateOverextended
	}

	if math.Abs(*emaSlope) > re.atrThreshold && signal.IsFlat() {
		return StatePullbackPending
	}

	return StateRanging
}

// BuildAdvisory renders the advisory for a state on a given timeframe
func (re *RecheckEngine) BuildAdvisory(state MarketState, timeframe string) *RecheckAdvisory {
	candles, ok := stateToCandles[state]
	if !ok {
		candles = 3
	}

	minutes, ok := timeframeMinutes[timeframe]
	if !ok {
		minutes = 60
	}

	hint, ok := stateHints[state]
	if !ok {
		hint = "Wait for clearer market structure"
	}

	return &RecheckAdvisory{
		MarketState:          state,
		RecheckAfterCandles:  candles,
		RecheckTimeframe:     timeframe,
		EstimatedWaitMinutes: candles * minutes,
		NextCheckHint:        hint,
	}
}
