package market

import (
	"context"
	"strings"
)

// Router routes symbols to the correct market data provider:
// USDT-quoted crypto goes to Binance, everything else to Twelve Data.
type Router struct {
	crypto     Provider
	multiAsset Provider
}

// NewRouter creates a market data router
func NewRouter(crypto, multiAsset Provider) *Router {
	return &Router{
		crypto:     crypto,
		multiAsset: multiAsset,
	}
}

// FetchSeries fetches OHLCV data from the provider responsible for the symbol
func (r *Router) FetchSeries(ctx context.Context, symbol, interval string, limit int) (Series, error) {
	if IsCryptoSymbol(symbol) {
		return r.crypto.FetchSeries(ctx, symbol, interval, limit)
	}
	return r.multiAsset.FetchSeries(ctx, symbol, interval, limit)
}

// IsCryptoSymbol reports whether a symbol is served by the crypto provider
func IsCryptoSymbol(symbol string) bool {
	clean := strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
	return strings.HasSuffix(clean, "USDT")
}
