package pagecache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tvtally/internal/config"
)

// keyPrefix namespaces all page keys in Redis to avoid collisions.
const keyPrefix = "tvtally:page:"

// redisCache implements the Cache interface on Redis/Valkey. Pages are plain
// string keys with a TTL; server-side expiry replaces LRU bookkeeping, which
// a page cache does not need.
type redisCache struct {
	client *redis.Client
	cfg    Config
}

func newRedisCache(cfg Config) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pagecache: redis ping failed: %w", err)
	}
	return &redisCache{client: client, cfg: cfg}, nil
}

func (r *redisCache) Get(url string) ([]byte, bool) {
	body, err := r.client.Get(context.Background(), keyPrefix+url).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("url", url).Msg("Redis page lookup failed")
		}
		return nil, false
	}
	return body, true
}

func (r *redisCache) Set(url string, body []byte) {
	if err := r.client.Set(context.Background(), keyPrefix+url, body, r.cfg.TTL).Err(); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("url", url).Msg("Redis page store failed")
	}
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
