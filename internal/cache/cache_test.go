package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/models"
)

// fakeRedis is an in-memory redisClient.
type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	sets    map[string]map[string]struct{}
	pingErr error
	getErr  error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
		sets:   map[string]map[string]struct{}{},
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) SAdd(_ context.Context, key string, members ...any) *redis.IntCmd {
	set, ok := f.sets[key]
	if !ok {
		set = map[string]struct{}{}
		f.sets[key] = set
	}
	for _, m := range members {
		set[m.(string)] = struct{}{}
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeRedis) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	var out []string
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
		delete(f.sets, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c, err := newRedisCache(ctx, rdb, time.Minute, logger.Nop())
	require.NoError(t, err)

	stats := []models.TourStats{{Difficulty: "EASY", NumTours: 4, NumRatings: 20, AvgRating: 4.7, AvgPrice: 997, MinPrice: 397, MaxPrice: 1997}}
	require.NoError(t, c.Set(ctx, TourStatsKey(4.5), stats))
	assert.Equal(t, time.Minute, rdb.ttls[TourStatsKey(4.5)])
	assert.Contains(t, rdb.sets[indexKey], TourStatsKey(4.5))

	var got []models.TourStats
	hit, err := c.Get(ctx, TourStatsKey(4.5), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, stats, got)
}

func TestRedisCache_Miss(t *testing.T) {
	ctx := context.Background()
	c, err := newRedisCache(ctx, newFakeRedis(), 0, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, defaultTTL, c.ttl)

	var got []models.MonthlyPlan
	hit, err := c.Get(ctx, MonthlyPlanKey(2021), &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestRedisCache_UndecodableIsMiss(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	rdb.values[MonthlyPlanKey(2021)] = "{broken"
	c, err := newRedisCache(ctx, rdb, time.Minute, logger.Nop())
	require.NoError(t, err)

	var got []models.MonthlyPlan
	hit, err := c.Get(ctx, MonthlyPlanKey(2021), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_GetError(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c, err := newRedisCache(ctx, rdb, time.Minute, logger.Nop())
	require.NoError(t, err)

	rdb.getErr = errors.New("connection reset")
	var got []models.MonthlyPlan
	_, err = c.Get(ctx, MonthlyPlanKey(2021), &got)
	assert.ErrorContains(t, err, "connection reset")
}

func TestRedisCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c, err := newRedisCache(ctx, rdb, time.Minute, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, TourStatsKey(4.5), []models.TourStats{}))
	require.NoError(t, c.Set(ctx, MonthlyPlanKey(2021), []models.MonthlyPlan{}))
	require.NoError(t, c.Invalidate(ctx))

	assert.Empty(t, rdb.values)
	assert.NotContains(t, rdb.sets, indexKey)
}

func TestNewRedisCache_PingError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.pingErr = errors.New("dial tcp: connection refused")

	_, err := newRedisCache(context.Background(), rdb, time.Minute, logger.Nop())
	assert.ErrorContains(t, err, "ping redis")
}

func TestNew_Disabled(t *testing.T) {
	c, err := New(context.Background(), config.Cache{}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	hit, err := c.Get(context.Background(), TourStatsKey(4.5), &[]models.TourStats{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(context.Background(), TourStatsKey(4.5), nil))
	assert.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, c.Close())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "natours:stats:tour-stats:4.5", TourStatsKey(4.5))
	assert.Equal(t, "natours:stats:monthly-plan:2021", MonthlyPlanKey(2021))
}
