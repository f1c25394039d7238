// Package cache is the answer cache in front of the resolution pipeline.
// Redis backs it in production; when Redis is unreachable at startup the
// gateway degrades to a no-op and every lookup misses.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/assetdesk/assetdesk/internal/observability"
)

type store interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Gateway caches final answers keyed by the raw question string.
type Gateway struct {
	store  store
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis and verifies the connection with a ping. A failed
// ping yields a degraded gateway, not an error: callers keep running
// without caching.
func New(ctx context.Context, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if client == nil {
		return &Gateway{ttl: ttl, logger: logger}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, caching disabled", slog.String("error", err.Error()))
		return &Gateway{ttl: ttl, logger: logger}
	}
	return &Gateway{store: &redisStore{client: client}, ttl: ttl, logger: logger}
}

func newGateway(s store, ttl time.Duration, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{store: s, ttl: ttl, logger: logger}
}

// Available reports whether a backing store is connected.
func (g *Gateway) Available() bool {
	return g.store != nil
}

// Get looks up a cached answer for the question. Errors are absorbed and
// reported as misses.
func (g *Gateway) Get(ctx context.Context, question string) (string, bool) {
	if g.store == nil {
		return "", false
	}
	answer, hit, err := g.store.get(ctx, question)
	if err != nil {
		g.logger.Error("cache get failed", slog.String("error", err.Error()))
		observability.ObserveCacheLookup(false)
		return "", false
	}
	observability.ObserveCacheLookup(hit)
	return answer, hit
}

// Put writes the final answer under the raw question key with the fixed
// gateway TTL. A no-op when degraded; write failures are logged only.
func (g *Gateway) Put(ctx context.Context, question, answer string) {
	if g.store == nil {
		return
	}
	if err := g.store.set(ctx, question, answer, g.ttl); err != nil {
		g.logger.Error("cache set failed", slog.String("error", err.Error()))
	}
}

type redisStore struct {
	client *redis.Client
}

func (r *redisStore) get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *redisStore) set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}
