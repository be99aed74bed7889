package analysis

import (
	"math"

	"trading-analysis-bot/internal/market"
)

// Confidence composite weights
const (
	WeightStructure  = 0.30
	WeightIndicator  = 0.30
	WeightVolume     = 0.20
	WeightVolatility = 0.20
)

// DefaultConfidenceThreshold blocks setups scoring below it
const DefaultConfidenceThreshold = 60.0

// ConfidenceInputs are the four 0-1 sub-scores of the composite
type ConfidenceInputs struct {
	Structure  float64 `json:"structure"`
	Indicator  float64 `json:"indicator"`
	Volume     float64 `json:"volume"`
	Volatility float64 `json:"volatility"`
}

// CalculateConfidence computes the weighted composite, scaled to 0-100
// and rounded to 2 decimals.
func CalculateConfidence(in ConfidenceInputs) float64 {
	confidence := in.Structure*WeightStructure +
		in.Indicator*WeightIndicator +
		in.Volume*WeightVolume +
		in.Volatility*WeightVolatility

	return math.Round(confidence*100*100) / 100
}

// ScoreProvider supplies the confidence sub-scores for a series
type ScoreProvider interface {
	Scores(candles market.Series) ConfidenceInputs
}

// StaticScoreProvider returns fixed structure/indicator/volume scores and
// derives the volatility score from the series. Stands in for the
// upstream analytics that would supply real sub-scores.
type StaticScoreProvider struct {
	Structure float64
	Indicator float64
	Volume    float64
}

// NewStaticScoreProvider creates the default sub-score provider
func NewStaticScoreProvider() *StaticScoreProvider {
	return &StaticScoreProvider{
		Structure: 0.7,
		Indicator: 0.8,
		Volume:    0.6,
	}
}

func (p *StaticScoreProvider) Scores(candles market.Series) ConfidenceInputs {
	return ConfidenceInputs{
		Structure:  p.Structure,
		Indicator:  p.Indicator,
		Volume:     p.Volume,
		Volatility: NormalizedVolatilityScore(candles, DefaultATRPeriod),
	}
}
