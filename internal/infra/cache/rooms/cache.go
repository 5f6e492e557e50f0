package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

const (
	// ActiveRoomsKey ключ публичного каталога активных комнат
	ActiveRoomsKey = "rooms:active"

	cacheName = "rooms"
)

var (
	// ErrCacheMiss значения нет в кэше (или кэш выключен)
	ErrCacheMiss = errors.New("rooms.cache: miss")

	// ErrCache ошибка обращения к redis или разбора значения
	ErrCache = errors.New("rooms.cache: redis error")
)

// Cache кэш каталога активных комнат в redis.
// С nil клиентом работает как всегда пустой кэш.
type Cache struct {
	client  Client
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewCache создает кэш каталога
func NewCache(client Client, ttl time.Duration, m Metrics, logger Logger) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// GetActive возвращает закэшированный список активных комнат или ErrCacheMiss
func (c *Cache) GetActive(ctx context.Context) ([]*domain.Room, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, ActiveRoomsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.lookup(metrics.CacheMiss)
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.lookup(metrics.CacheMiss)
		return nil, fmt.Errorf("%w: GetActive - get: %v", ErrCache, err)
	}

	var rooms []*domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		c.lookup(metrics.CacheMiss)
		return nil, fmt.Errorf("%w: GetActive - unmarshal: %v", ErrCache, err)
	}

	c.lookup(metrics.CacheHit)
	return rooms, nil
}

// SetActive сохраняет список активных комнат на ttl
func (c *Cache) SetActive(ctx context.Context, rooms []*domain.Room) error {
	if c.client == nil {
		return nil
	}

	raw, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("%w: SetActive - marshal: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, ActiveRoomsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetActive - set: %v", ErrCache, err)
	}

	return nil
}

// Invalidate удаляет каталог после изменения комнат или особенностей.
// Ошибка redis только логируется: запись в БД уже выполнена.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, ActiveRoomsKey).Err(); err != nil && c.logger != nil {
		c.logger.Warn("rooms.cache: failed to invalidate %s: %v", ActiveRoomsKey, err)
	}
}

func (c *Cache) lookup(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookup(cacheName, result)
	}
}
