package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedProvider wraps a Provider with a Redis candle cache keyed by
// symbol and interval. Cache failures degrade to a direct fetch.
type CachedProvider struct {
	inner  Provider
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProvider creates a caching wrapper around a market data provider
func NewCachedProvider(inner Provider, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(symbol, interval string) string {
	clean := strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
	return fmt.Sprintf("candles:%s:%s", clean, interval)
}

// FetchSeries returns cached candles when fresh, otherwise fetches and caches
func (p *CachedProvider) FetchSeries(ctx context.Context, symbol, interval string, limit int) (Series, error) {
	key := cacheKey(symbol, interval)

	if p.client != nil {
		cached, err := p.client.Get(ctx, key).Result()
		if err == nil {
			var candles Series
			if jsonErr := json.Unmarshal([]byte(cached), &candles); jsonErr == nil && len(candles) > 0 {
				return candles, nil
			}
		} else if err != redis.Nil {
			p.logger.Warn().Err(err).Str("key", key).Msg("candle cache read failed")
		}
	}

	candles, err := p.inner.FetchSeries(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}

	if p.client != nil {
		if data, jsonErr := json.Marshal(candles); jsonErr == nil {
			if setErr := p.client.Set(ctx, key, data, p.ttl).Err(); setErr != nil {
				p.logger.Warn().Err(setErr).Str("key", key).Msg("candle cache write failed")
			}
		}
	}

	return candles, nil
}
