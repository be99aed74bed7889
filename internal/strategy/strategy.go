package strategy

import "trading-analysis-bot/internal/market"

// Signal is a directional trade signal
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNoTrade Signal = "NO_TRADE"
	// SignalHold marks a directional signal downgraded by a cost or
	// liquidity filter; it is never produced by a strategy directly.
	SignalHold Signal = "HOLD"
)

// IsDirectional reports whether the signal proposes an actual trade
func (s Signal) IsDirectional() bool {
	return s == SignalBuy || s == SignalSell
}

// IsFlat reports whether the signal proposes no trade
func (s Signal) IsFlat() bool {
	return !s.IsDirectional()
}

// Trend is the classified market bias
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
	TrendRanging Trend = "Ranging"
)

// Default diagnostic values used when an indicator cannot be computed
const (
	DefaultRSI      = 50.0
	DefaultEMASlope = 0.0
)

// Evaluation is the classifier output: a signal plus the diagnostics
// downstream gates read. RSI and EMASlope carry safe defaults when
// the underlying indicators are unavailable.
type Evaluation struct {
	Signal   Signal  `json:"signal"`
	RSI      float64 `json:"rsi"`
	EMASlope float64 `json:"ema_slope"`
}

// Strategy generates trade signals from a candle series
type Strategy interface {
	Name() string
	Evaluate(candles market.Series) (*Evaluation, error)
}
