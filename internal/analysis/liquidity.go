package analysis

import "trading-analysis-bot/internal/market"

// DefaultStopHuntWindow is the number of recent candles examined for traps
const DefaultStopHuntWindow = 12

// StopHunts flags suspected liquidity traps in the recent candles
type StopHunts struct {
	BuyStopHunt  bool `json:"buy_stop_hunt"`
	SellStopHunt bool `json:"sell_stop_hunt"`
}

// DetectStopHunts inspects the last window candles for a stop hunt:
// a buy-side hunt is the latest high exceeding every prior high in the
// window while the close falls back inside the prior high/low range;
// the sell side mirrors the condition on lows.
func DetectStopHunts(candles market.Series, window int) StopHunts {
	if window <= 0 {
		window = DefaultStopHuntWindow
	}
	if len(candles) < window {
		return StopHunts{}
	}

	recent := candles.Tail(window)
	latest := recent[len(recent)-1]
	prior := recent[:len(recent)-1]

	priorHigh := prior[0].High
	priorLow := prior[0].Low
	for _, c := range prior[1:] {
		if c.High > priorHigh {
			priorHigh = c.High
		}
		if c.Low < priorLow {
			priorLow = c.Low
		}
	}

	insidePrior := latest.Close <= priorHigh && latest.Close >= priorLow

	return StopHunts{
		BuyStopHunt:  latest.High > priorHigh && insidePrior,
		SellStopHunt: latest.Low < priorLow && insidePrior,
	}
}
