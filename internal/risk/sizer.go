package risk

import (
	"errors"
	"fmt"
	"math"

	"trading-analysis-bot/internal/instrument"
)

// Lot clamp bounds for auto sizing
const (
	DefaultMinLot = 0.001
	DefaultMaxLot = 100.0
)

// Sizing errors
var (
	ErrInvalidStopDistance = errors.New("invalid stop loss distance")
	ErrLotTooSmall         = errors.New("account balance too small for safe trading")
	ErrLotOutOfRange       = errors.New("manual lot size outside allowed bounds")
	ErrInvalidRiskParams   = errors.New("invalid risk parameters")
)

// SizingResult is the derived position size. Never mutated after creation.
type SizingResult struct {
	Units             float64 `json:"units"`
	Lots              float64 `json:"lots"`
	UnitsPerLot       float64 `json:"units_per_lot"`
	RiskAmount        float64 `json:"risk_amount"`
	PipDistance       float64 `json:"pip_distance"`
	ActualRiskPercent float64 `json:"actual_risk_percent"`
}

// PositionSizer converts a risk budget (or a manual lot size) into
// position units using the instrument registry's pip geometry.
type PositionSizer struct {
	registry *instrument.Registry
	minLot   float64
	maxLot   float64
}

// NewPositionSizer creates a sizer with the given lot clamp bounds
func NewPositionSizer(registry *instrument.Registry, minLot, maxLot float64) *PositionSizer {
	if minLot <= 0 {
		minLot = DefaultMinLot
	}
	// Inverted bounds fall back to the defaults wholesale so that
	// minLot <= maxLot always holds
	if maxLot < minLot {
		minLot = DefaultMinLot
		maxLot = DefaultMaxLot
	}
	return &PositionSizer{
		registry: registry,
		minLot:   minLot,
		maxLot:   maxLot,
	}
}

// pipDistance computes the stop distance in pips for an instrument
func pipDistance(entry, stop float64, spec instrument.Spec) float64 {
	return math.Abs(entry-stop) / spec.PipSize
}

// CalculatePosition sizes a position from the risk budget (auto mode):
// risk_amount = balance * risk%/100, units = risk_amount / (pip_distance *
// pip_value_per_unit). The resulting lots are clamped to [minLot, maxLot]
// with units recomputed after clamping; a raw lot size below minLot fails
// with ErrLotTooSmall instead of being silently bumped up.
func (ps *PositionSizer) CalculatePosition(symbol string, balance, riskPercent, entry, stop float64) (*SizingResult, error) {
	if balance <= 0 || riskPercent <= 0 || riskPercent > 100 {
		return nil, ErrInvalidRiskParams
	}

	spec, err := ps.registry.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	pips := pipDistance(entry, stop, spec)
	if pips <= 0 {
		return nil, ErrInvalidStopDistance
	}

	riskAmount := balance * (riskPercent / 100)
	units := riskAmount / (pips * spec.PipValuePerUnit)
	lots := units / spec.LotSize

	if lots < ps.minLot {
		return nil, fmt.Errorf("%w: %.5f lots below minimum %.3f", ErrLotTooSmall, lots, ps.minLot)
	}
	if lots > ps.maxLot {
		lots = ps.maxLot
		units = lots * spec.LotSize
	}

	return &SizingResult{
		Units:             round(units, 2),
		Lots:              round(lots, 3),
		UnitsPerLot:       spec.LotSize,
		RiskAmount:        round(riskAmount, 2),
		PipDistance:       round(pips, 1),
		ActualRiskPercent: riskPercent,
	}, nil
}

// CalculateFromLot sizes a position from a caller-supplied lot size
// (manual mode). The lot size must already lie inside [minLot, maxLot];
// out-of-range values fail rather than being clamped. The actual risk
// percent is derived from the implied risk amount and reported as-is,
// even when it exceeds the nominal request.
func (ps *PositionSizer) CalculateFromLot(symbol string, balance, lotSize, entry, stop float64) (*SizingResult, error) {
	if balance <= 0 {
		return nil, ErrInvalidRiskParams
	}
	if lotSize < ps.minLot || lotSize > ps.maxLot {
		return nil, fmt.Errorf("%w: %.3f not in [%.3f, %.3f]", ErrLotOutOfRange, lotSize, ps.minLot, ps.maxLot)
	}

	spec, err := ps.registry.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	pips := pipDistance(entry, stop, spec)
	if pips <= 0 {
		return nil, ErrInvalidStopDistance
	}

	units := lotSize * spec.LotSize
	riskAmount := pips * units * spec.PipValuePerUnit

	return &SizingResult{
		Units:             round(units, 2),
		Lots:              round(lotSize, 3),
		UnitsPerLot:       spec.LotSize,
		RiskAmount:        round(riskAmount, 2),
		PipDistance:       round(pips, 1),
		ActualRiskPercent: round(riskAmount/balance*100, 2),
	}, nil
}

// MinLot returns the sizer's lower lot bound
func (ps *PositionSizer) MinLot() float64 { return ps.minLot }

// MaxLot returns the sizer's upper lot bound
func (ps *PositionSizer) MaxLot() float64 { return ps.maxLot }

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
