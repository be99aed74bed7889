package risk

import (
	"errors"
	"fmt"
	"math"

	"trading-analysis-bot/internal/strategy"
)

// Default ATR multipliers for stop and target placement. The ratio
// TPMult/SLMult fixes the nominal risk:reward at 2.0.
const (
	DefaultSLMult = 1.5
	DefaultTPMult = 3.0
)

// ErrInvalidATR indicates no stop can be derived from the given ATR
var ErrInvalidATR = errors.New("ATR must be positive to derive stop placement")

// Targets holds the derived stop and take-profit levels
type Targets struct {
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
}

// ATRTargets derives stop-loss and take-profit from the entry and ATR:
// stop = entry - atr*slMult, tp = entry + atr*tpMult for BUY, mirrored
// for SELL. A non-positive ATR is a hard error for the evaluation.
func ATRTargets(entry, atr float64, signal strategy.Signal, slMult, tpMult float64) (Targets, error) {
	if atr <= 0 || math.IsNaN(atr) {
		return Targets{}, ErrInvalidATR
	}
	if slMult <= 0 {
		slMult = DefaultSLMult
	}
	if tpMult <= 0 {
		tpMult = DefaultTPMult
	}

	switch signal {
	case strategy.SignalBuy:
		return Targets{
			StopLoss:   entry - atr*slMult,
			TakeProfit: entry + atr*tpMult,
		}, nil
	case strategy.SignalSell:
		return Targets{
			StopLoss:   entry + atr*slMult,
			TakeProfit: entry - atr*tpMult,
		}, nil
	default:
		return Targets{}, fmt.Errorf("cannot derive targets for signal %s", signal)
	}
}

// RewardRiskRatio computes |tp-entry| / |entry-stop|, 0 when risk is zero
func RewardRiskRatio(entry, stop, takeProfit float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(takeProfit-entry) / risk
}
