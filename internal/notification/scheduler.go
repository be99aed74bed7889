package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"trading-analysis-bot/internal/analysis"
)

// Scheduler stores recheck advisories in Redis with a TTL matching the
// estimated wait and notifies the user. Implements engine.RecheckScheduler.
// All failures are logged, never propagated: a missed reminder must not
// alter the already-computed decision.
type Scheduler struct {
	client  *redis.Client
	manager *Manager
	logger  zerolog.Logger
}

// NewScheduler creates a recheck scheduler
func NewScheduler(client *redis.Client, manager *Manager, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		client:  client,
		manager: manager,
		logger:  logger,
	}
}

// Schedule records the advisory and sends the advisory notification
func (s *Scheduler) Schedule(ctx context.Context, symbol string, advisory *analysis.RecheckAdvisory) {
	if advisory == nil {
		return
	}

	if s.client != nil {
		key := fmt.Sprintf("recheck:%s", symbol)
		ttl := time.Duration(advisory.EstimatedWaitMinutes) * time.Minute
		if ttl <= 0 {
			ttl = time.Hour
		}

		data, err := json.Marshal(advisory)
		if err == nil {
			if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("failed to store recheck advisory")
			}
		}
	}

	if s.manager != nil {
		s.manager.SendAdvisory(symbol, advisory)
	}
}

// Pending returns the stored advisory for a symbol, if one is active
func (s *Scheduler) Pending(ctx context.Context, symbol string) (*analysis.RecheckAdvisory, error) {
	if s.client == nil {
		return nil, nil
	}

	data, err := s.client.Get(ctx, fmt.Sprintf("recheck:%s", symbol)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var advisory analysis.RecheckAdvisory
	if err := json.Unmarshal([]byte(data), &advisory); err != nil {
		return nil, err
	}
	return &advisory, nil
}
