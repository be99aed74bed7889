// Package instrument holds static per-symbol trading specifications:
// pip geometry for position sizing and estimated execution spreads.
package instrument

import (
	"fmt"
	"strings"
)

// Spec describes the pip geometry of a tradable instrument
type Spec struct {
	Symbol          string  `json:"symbol"`
	PipSize         float64 `json:"pip_size"`
	PipValuePerUnit float64 `json:"pip_value_per_unit"`
	LotSize         float64 `json:"lot_size"` // units per standard lot
}

// DefaultSpreadPips is assumed when a symbol has no spread table entry
const DefaultSpreadPips = 1.5

// Registry is a read-only lookup table of instrument specs and spread
// estimates. Safe for unsynchronized concurrent reads after construction.
type Registry struct {
	specs   map[string]Spec
	spreads map[string]float64
}

// NewRegistry creates a registry with the default instrument set
func NewRegistry() *Registry {
	return &Registry{
		specs: map[string]Spec{
			"EURUSD":  {Symbol: "EURUSD", PipSize: 0.0001, PipValuePerUnit: 0.0001, LotSize: 100000},
			"GBPUSD":  {Symbol: "GBPUSD", PipSize: 0.0001, PipValuePerUnit: 0.0001, LotSize: 100000},
			"USDJPY":  {Symbol: "USDJPY", PipSize: 0.01, PipValuePerUnit: 0.0001, LotSize: 100000},
			"XAUUSD":  {Symbol: "XAUUSD", PipSize: 0.01, PipValuePerUnit: 0.01, LotSize: 100},
			"BTCUSDT": {Symbol: "BTCUSDT", PipSize: 1.0, PipValuePerUnit: 1.0, LotSize: 1},
			"ETHUSDT": {Symbol: "ETHUSDT", PipSize: 0.1, PipValuePerUnit: 0.1, LotSize: 1},
		},
		spreads: map[string]float64{
			"EURUSD":  1.0,
			"GBPUSD":  1.2,
			"USDJPY":  1.1,
			"XAUUSD":  2.5,
			"BTCUSDT": 2.0,
			"ETHUSDT": 2.0,
		},
	}
}

// Normalize strips slashes and uppercases a symbol for lookup
func Normalize(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
}

// Lookup returns the spec for a symbol, or an error when none is registered
func (r *Registry) Lookup(symbol string) (Spec, error) {
	spec, ok := r.specs[Normalize(symbol)]
	if !ok {
		return Spec{}, fmt.Errorf("no instrument spec for %s", symbol)
	}
	return spec, nil
}

// Has reports whether a spec is registered for the symbol
func (r *Registry) Has(symbol string) bool {
	_, ok := r.specs[Normalize(symbol)]
	return ok
}

// SpreadPips returns the estimated spread for a symbol in pips
func (r *Registry) SpreadPips(symbol string) float64 {
	if spread, ok := r.spreads[Normalize(symbol)]; ok {
		return spread
	}
	return DefaultSpreadPips
}

// Symbols returns all registered symbols
func (r *Registry) Symbols() []string {
	symbols := make([]string, 0, len(r.specs))
	for s := range r.specs {
		symbols = append(symbols, s)
	}
	return symbols
}
