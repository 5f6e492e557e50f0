package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

type fakeClient struct {
	values  map[string]string
	ttl     time.Duration
	failGet error
	failDel error
	deleted []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: make(map[string]string)}
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.failDel != nil {
		return redis.NewIntResult(0, f.failDel)
	}
	for _, k := range keys {
		delete(f.values, k)
	}
	f.deleted = append(f.deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

type fakeMetrics struct {
	lookups map[string]int
}

func (f *fakeMetrics) CacheLookup(cache, result string) {
	f.lookups[cache+":"+result]++
}

type fakeLogger struct {
	warnings int
}

func (f *fakeLogger) Warn(format string, v ...interface{}) {
	f.warnings++
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	m := &fakeMetrics{lookups: make(map[string]int)}
	cache := NewCache(client, 5*time.Minute, m, &fakeLogger{})

	_, err := cache.GetActive(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	rooms := []*domain.Room{{
		ID:           1,
		Name:         "Малая переговорная",
		Capacity:     4,
		PricePerHour: decimal.RequireFromString("150.50"),
		Features:     []domain.RoomFeature{{ID: 2, Name: "Проектор", Icon: "fa-video"}},
		IsActive:     true,
	}}
	require.NoError(t, cache.SetActive(ctx, rooms))
	assert.Equal(t, 5*time.Minute, client.ttl)

	got, err := cache.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Малая переговорная", got[0].Name)
	assert.True(t, got[0].PricePerHour.Equal(decimal.RequireFromString("150.5")))
	assert.Equal(t, "Проектор", got[0].Features[0].Name)

	assert.Equal(t, 1, m.lookups["rooms:"+metrics.CacheMiss])
	assert.Equal(t, 1, m.lookups["rooms:"+metrics.CacheHit])
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	logger := &fakeLogger{}
	cache := NewCache(client, time.Minute, nil, logger)

	require.NoError(t, cache.SetActive(ctx, []*domain.Room{}))
	cache.Invalidate(ctx)

	_, err := cache.GetActive(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, []string{ActiveRoomsKey}, client.deleted)

	client.failDel = errors.New("connection refused")
	cache.Invalidate(ctx)
	assert.Equal(t, 1, logger.warnings)
}

func TestCache_RedisError(t *testing.T) {
	client := newFakeClient()
	client.failGet = errors.New("i/o timeout")
	cache := NewCache(client, time.Minute, nil, nil)

	_, err := cache.GetActive(context.Background())
	assert.ErrorIs(t, err, ErrCache)
}

func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(nil, time.Minute, nil, nil)

	_, err := cache.GetActive(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, cache.SetActive(ctx, nil))
	cache.Invalidate(ctx)
}
