package instrument

import "testing"

// TestLookup tests spec retrieval and symbol normalization
func TestLookup(t *testing.T) {
	registry := NewRegistry()

	spec, err := registry.Lookup("EURUSD")
	if err != nil {
		t.Fatalf("Should find EURUSD, got error: %v", err)
	}
	if spec.PipSize != 0.0001 {
		t.Errorf("EURUSD pip size should be 0.0001, got %v", spec.PipSize)
	}
	if spec.LotSize != 100000 {
		t.Errorf("EURUSD lot size should be 100000, got %v", spec.LotSize)
	}

	// Slash-separated and lowercase forms resolve to the same spec
	if _, err := registry.Lookup("eur/usd"); err != nil {
		t.Errorf("Lookup should normalize eur/usd, got error: %v", err)
	}
}

// TestLookupJPYPair tests the two-decimal pip convention
func TestLookupJPYPair(t *testing.T) {
	registry := NewRegistry()

	spec, err := registry.Lookup("USDJPY")
	if err != nil {
		t.Fatalf("Should find USDJPY, got error: %v", err)
	}
	if spec.PipSize != 0.01 {
		t.Errorf("USDJPY pip size should be 0.01, got %v", spec.PipSize)
	}
}

// TestLookupUnknown tests the miss path
func TestLookupUnknown(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Lookup("FOOBAR"); err == nil {
		t.Error("Unknown symbol should return an error")
	}
	if registry.Has("FOOBAR") {
		t.Error("Has should be false for unknown symbols")
	}
}

// TestNormalize tests symbol normalization rules
func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EUR/USD", "EURUSD"},
		{"eurusd", "EURUSD"},
		{"btc/usdt", "BTCUSDT"},
		{"XAUUSD", "XAUUSD"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) should be %q, got %q", tt.in, tt.want, got)
		}
	}
}

// TestSpreadPips tests spread lookup and its default
func TestSpreadPips(t *testing.T) {
	registry := NewRegistry()

	if spread := registry.SpreadPips("XAUUSD"); spread != 2.5 {
		t.Errorf("XAUUSD spread should be 2.5 pips, got %v", spread)
	}
	if spread := registry.SpreadPips("UNKNOWN"); spread != DefaultSpreadPips {
		t.Errorf("Unknown symbol should use the default spread, got %v", spread)
	}
}

// TestSymbols tests that every registered spec is listed
func TestSymbols(t *testing.T) {
	registry := NewRegistry()

	symbols := registry.Symbols()
	if len(symbols) != 6 {
		t.Errorf("Registry should list 6 symbols, got %d", len(symbols))
	}
	for _, s := range symbols {
		if !registry.Has(s) {
			t.Errorf("Listed symbol %s should resolve", s)
		}
	}
}
