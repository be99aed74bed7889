package risk

import (
	"errors"
	"math"
	"testing"

	"trading-analysis-bot/internal/strategy"
)

// TestATRTargetsBuy tests stop and target placement for a long setup
func TestATRTargetsBuy(t *testing.T) {
	targets, err := ATRTargets(100, 2, strategy.SignalBuy, 1.5, 3.0)
	if err != nil {
		t.Fatalf("Should derive targets, got error: %v", err)
	}

	if targets.StopLoss != 97 {
		t.Errorf("BUY stop should be 97, got %v", targets.StopLoss)
	}
	if targets.TakeProfit != 106 {
		t.Errorf("BUY target should be 106, got %v", targets.TakeProfit)
	}
}

// TestATRTargetsSell tests stop and target placement for a short setup
func TestATRTargetsSell(t *testing.T) {
	targets, err := ATRTargets(100, 2, strategy.SignalSell, 1.5, 3.0)
	if err != nil {
		t.Fatalf("Should derive targets, got error: %v", err)
	}

	if targets.StopLoss != 103 {
		t.Errorf("SELL stop should be 103, got %v", targets.StopLoss)
	}
	if targets.TakeProfit != 94 {
		t.Errorf("SELL target should be 94, got %v", targets.TakeProfit)
	}
}

// TestATRTargetsInvalidATR tests that a non-positive ATR is rejected
func TestATRTargetsInvalidATR(t *testing.T) {
	if _, err := ATRTargets(100, 0, strategy.SignalBuy, 1.5, 3.0); !errors.Is(err, ErrInvalidATR) {
		t.Errorf("Zero ATR should fail with ErrInvalidATR, got %v", err)
	}
	if _, err := ATRTargets(100, -1, strategy.SignalBuy, 1.5, 3.0); !errors.Is(err, ErrInvalidATR) {
		t.Errorf("Negative ATR should fail with ErrInvalidATR, got %v", err)
	}
	if _, err := ATRTargets(100, math.NaN(), strategy.SignalBuy, 1.5, 3.0); !errors.Is(err, ErrInvalidATR) {
		t.Errorf("NaN ATR should fail with ErrInvalidATR, got %v", err)
	}
}

// TestATRTargetsFlatSignal tests that flat signals cannot produce targets
func TestATRTargetsFlatSignal(t *testing.T) {
	if _, err := ATRTargets(100, 2, strategy.SignalNoTrade, 1.5, 3.0); err == nil {
		t.Error("Flat signal should not produce targets")
	}
}

// TestATRTargetsDefaultMultipliers tests the fallback multipliers
func TestATRTargetsDefaultMultipliers(t *testing.T) {
	targets, err := ATRTargets(100, 2, strategy.SignalBuy, 0, 0)
	if err != nil {
		t.Fatalf("Should derive targets, got error: %v", err)
	}

	// Defaults 1.5 and 3.0
	if targets.StopLoss != 97 || targets.TakeProfit != 106 {
		t.Errorf("Default multipliers should place 97/106, got %v/%v", targets.StopLoss, targets.TakeProfit)
	}
}

// TestRewardRiskRatio tests the ratio calculation and its zero-risk guard
func TestRewardRiskRatio(t *testing.T) {
	if rr := RewardRiskRatio(100, 97, 106); rr != 2.0 {
		t.Errorf("Ratio should be 2.0, got %v", rr)
	}
	if rr := RewardRiskRatio(100, 103, 94); rr != 2.0 {
		t.Errorf("Short-side ratio should be 2.0, got %v", rr)
	}
	if rr := RewardRiskRatio(100, 100, 106); rr != 0 {
		t.Errorf("Zero risk should yield ratio 0, got %v", rr)
	}
}
