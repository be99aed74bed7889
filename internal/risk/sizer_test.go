package risk

import (
	"errors"
	"testing"

	"trading-analysis-bot/internal/instrument"
)

func newTestSizer() *PositionSizer {
	return NewPositionSizer(instrument.NewRegistry(), DefaultMinLot, DefaultMaxLot)
}

// TestCalculatePosition tests auto sizing on a standard EURUSD setup
func TestCalculatePosition(t *testing.T) {
	sizer := newTestSizer()

	// 1% of 100k risked over a 100-pip stop
	result, err := sizer.CalculatePosition("EURUSD", 100000, 1.0, 1.2000, 1.1900)
	if err != nil {
		t.Fatalf("Should size the position, got error: %v", err)
	}

	if result.RiskAmount != 1000 {
		t.Errorf("Risk amount should be 1000, got %v", result.RiskAmount)
	}
	if result.PipDistance != 100 {
		t.Errorf("Pip distance should be 100, got %v", result.PipDistance)
	}
	if result.Units != 100000 {
		t.Errorf("Units should be 100000, got %v", result.Units)
	}
	if result.Lots != 1.0 {
		t.Errorf("Lots should be 1.0, got %v", result.Lots)
	}
	if result.ActualRiskPercent != 1.0 {
		t.Errorf("Actual risk percent should report the nominal 1.0, got %v", result.ActualRiskPercent)
	}
}

// TestCalculatePositionMetal tests sizing on XAUUSD's pip geometry
func TestCalculatePositionMetal(t *testing.T) {
	sizer := newTestSizer()

	// Pip size 0.01, pip value 0.01 per unit, 100 units per lot.
	// 500-pip stop: units = 500 / (500 * 0.01) = 100, lots = 1.0
	result, err := sizer.CalculatePosition("XAUUSD", 50000, 1.0, 2400.00, 2395.00)
	if err != nil {
		t.Fatalf("Should size the position, got error: %v", err)
	}

	if result.PipDistance != 500 {
		t.Errorf("Pip distance should be 500, got %v", result.PipDistance)
	}
	if result.Units != 100 {
		t.Errorf("Units should be 100, got %v", result.Units)
	}
	if result.Lots != 1.0 {
		t.Errorf("Lots should be 1.0, got %v", result.Lots)
	}
}

// TestCalculatePositionClampsMaxLot tests that oversized positions are
// clamped to the upper bound with units recomputed
func TestCalculatePositionClampsMaxLot(t *testing.T) {
	sizer := NewPositionSizer(instrument.NewRegistry(), 0.001, 2.0)

	// Unclamped this would be ~3.33 lots
	result, err := sizer.CalculatePosition("EURUSD", 100000, 1.0, 1.2000, 1.1970)
	if err != nil {
		t.Fatalf("Should size the position, got error: %v", err)
	}

	if result.Lots != 2.0 {
		t.Errorf("Lots should clamp to 2.0, got %v", result.Lots)
	}
	if result.Units != 200000 {
		t.Errorf("Units should be recomputed from the clamped lots, got %v", result.Units)
	}
}

// TestCalculatePositionLotTooSmall tests that dust-sized accounts fail
// instead of being bumped to the minimum lot
func TestCalculatePositionLotTooSmall(t *testing.T) {
	sizer := newTestSizer()

	// 1% of $10 over 100 pips is far below the minimum lot
	_, err := sizer.CalculatePosition("EURUSD", 10, 1.0, 1.2000, 1.1900)

	if !errors.Is(err, ErrLotTooSmall) {
		t.Errorf("Should fail with ErrLotTooSmall, got %v", err)
	}
}

// TestCalculatePositionInvalidParams tests parameter validation
func TestCalculatePositionInvalidParams(t *testing.T) {
	sizer := newTestSizer()

	if _, err := sizer.CalculatePosition("EURUSD", 0, 1.0, 1.2, 1.19); !errors.Is(err, ErrInvalidRiskParams) {
		t.Errorf("Zero balance should fail with ErrInvalidRiskParams, got %v", err)
	}
	if _, err := sizer.CalculatePosition("EURUSD", 100000, 0, 1.2, 1.19); !errors.Is(err, ErrInvalidRiskParams) {
		t.Errorf("Zero risk percent should fail with ErrInvalidRiskParams, got %v", err)
	}
	if _, err := sizer.CalculatePosition("EURUSD", 100000, 101, 1.2, 1.19); !errors.Is(err, ErrInvalidRiskParams) {
		t.Errorf("Risk percent above 100 should fail with ErrInvalidRiskParams, got %v", err)
	}
}

// TestCalculatePositionZeroStopDistance tests the degenerate stop guard
func TestCalculatePositionZeroStopDistance(t *testing.T) {
	sizer := newTestSizer()

	if _, err := sizer.CalculatePosition("EURUSD", 100000, 1.0, 1.2, 1.2); !errors.Is(err, ErrInvalidStopDistance) {
		t.Errorf("Stop at entry should fail with ErrInvalidStopDistance, got %v", err)
	}
}

// TestCalculatePositionUnknownSymbol tests the registry miss path
func TestCalculatePositionUnknownSymbol(t *testing.T) {
	sizer := newTestSizer()

	if _, err := sizer.CalculatePosition("FOOUSD", 100000, 1.0, 1.2, 1.19); err == nil {
		t.Error("Unknown symbol should fail")
	}
}

// TestCalculateFromLot tests manual sizing and derived risk reporting
func TestCalculateFromLot(t *testing.T) {
	sizer := newTestSizer()

	result, err := sizer.CalculateFromLot("EURUSD", 100000, 0.5, 1.2000, 1.1900)
	if err != nil {
		t.Fatalf("Should size the position, got error: %v", err)
	}

	if result.Units != 50000 {
		t.Errorf("Units should be 50000, got %v", result.Units)
	}
	if result.Lots != 0.5 {
		t.Errorf("Lots should be 0.5, got %v", result.Lots)
	}
	// 100 pips * 50000 units * 0.0001 = 500 risked on a 100k account
	if result.RiskAmount != 500 {
		t.Errorf("Risk amount should be 500, got %v", result.RiskAmount)
	}
	if result.ActualRiskPercent != 0.5 {
		t.Errorf("Actual risk percent should derive to 0.5, got %v", result.ActualRiskPercent)
	}
}

// TestNewPositionSizerInvertedBounds tests that inverted lot bounds fall
// back to the defaults as a pair, keeping min <= max
func TestNewPositionSizerInvertedBounds(t *testing.T) {
	// 500 > 1 inverts the bounds; resetting only the maximum would leave
	// a minimum no lot size can satisfy
	sizer := NewPositionSizer(instrument.NewRegistry(), 500, 1)

	if sizer.minLot > sizer.maxLot {
		t.Fatalf("Bounds should never stay inverted, got [%v, %v]", sizer.minLot, sizer.maxLot)
	}

	result, err := sizer.CalculateFromLot("EURUSD", 100000, 0.5, 1.2000, 1.1900)
	if err != nil {
		t.Fatalf("Default bounds should admit 0.5 lots, got error: %v", err)
	}
	if result.Lots != 0.5 {
		t.Errorf("Lots should be 0.5, got %v", result.Lots)
	}
}

// TestCalculateFromLotOutOfRange tests that out-of-range manual lots fail
// rather than being clamped
func TestCalculateFromLotOutOfRange(t *testing.T) {
	sizer := NewPositionSizer(instrument.NewRegistry(), 0.01, 10)

	if _, err := sizer.CalculateFromLot("EURUSD", 100000, 0.001, 1.2, 1.19); !errors.Is(err, ErrLotOutOfRange) {
		t.Errorf("Lot below minimum should fail with ErrLotOutOfRange, got %v", err)
	}
	if _, err := sizer.CalculateFromLot("EURUSD", 100000, 50, 1.2, 1.19); !errors.Is(err, ErrLotOutOfRange) {
		t.Errorf("Lot above maximum should fail with ErrLotOutOfRange, got %v", err)
	}
}
