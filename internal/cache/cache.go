// Package cache keeps computed tour aggregates (stats and monthly plans) in
// Redis so the aggregation queries only run after a write invalidated them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
)

//go:generate mockgen -source=cache.go -destination=../mock/cache_mock.go -package=mock

const (
	keyPrefix = "natours:stats:"
	// indexKey holds every key written since the last invalidation.
	indexKey = keyPrefix + "keys"

	defaultTTL = 10 * time.Minute
)

// TourStatsKey is the key of the difficulty stats over tours rated at
// least minRating.
func TourStatsKey(minRating float64) string {
	return fmt.Sprintf("%stour-stats:%g", keyPrefix, minRating)
}

// MonthlyPlanKey is the key of the monthly plan of year.
func MonthlyPlanKey(year int) string {
	return fmt.Sprintf("%smonthly-plan:%d", keyPrefix, year)
}

// StatsCache stores JSON encoded aggregates.
type StatsCache interface {
	// Get decodes the value under key into dst and reports whether it was
	// present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores v under key.
	Set(ctx context.Context, key string, v any) error
	// Invalidate drops every aggregate.
	Invalidate(ctx context.Context) error
	Close() error
}

// redisClient is the subset of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type redisCache struct {
	client redisClient
	ttl    time.Duration
	logger *logger.Logger
}

// New connects to the Redis server of cfg. An empty address returns a cache
// that never hits.
func New(ctx context.Context, cfg config.Cache, logger *logger.Logger) (StatsCache, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		logger.Info().Str("func", "cache.New").Msg("redis address is empty, aggregate cache is disabled")
		return Noop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	c, err := newRedisCache(ctx, client, cfg.TTL, logger)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info().Str("func", "cache.New").Str("addr", cfg.RedisAddr).Msg("connected to redis")
	return c, nil
}

func newRedisCache(ctx context.Context, client redisClient, ttl time.Duration, logger *logger.Logger) (*redisCache, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Err(err).Str("func", "cache.newRedisCache").Msg("error pinging redis")
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisCache{client: client, ttl: ttl, logger: logger}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err = json.Unmarshal(raw, dst); err != nil {
		// A value written by an older release is treated as a miss.
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*redisCache.Get").Str("key", key).Msg("dropping undecodable cache entry")
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err = c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	if err = c.client.SAdd(ctx, indexKey, key).Err(); err != nil {
		return fmt.Errorf("redis sadd %s: %w", indexKey, err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis smembers %s: %w", indexKey, err)
	}

	keys = append(keys, indexKey)
	if err = c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*redisCache.Invalidate").Int("keys", len(keys)-1).Msg("aggregate cache invalidated")
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// Noop is a [StatsCache] that stores nothing.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, any) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }

func (Noop) Close() error { return nil }
