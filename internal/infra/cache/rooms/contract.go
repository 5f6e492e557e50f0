package rooms

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client подмножество команд redis, используемых кэшем (*redis.Client)
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Metrics interface {
	CacheLookup(cache, result string)
}

type Logger interface {
	Warn(format string, v ...interface{})
}
