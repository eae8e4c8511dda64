package pagecache

import (
	"fmt"
	"time"
)

// Cache stores fetched page bodies keyed by URL. Within one run the series
// detail page is wanted by both season-count resolution and episode
// collection; across runs a TTL-bounded backend avoids re-fetching pages that
// rarely change.
type Cache interface {
	// Get retrieves a cached page body. Returns the body and true on a hit.
	Get(url string) ([]byte, bool)

	// Set stores a page body. An existing entry for the URL is overwritten.
	Set(url string, body []byte)

	// Close releases any resources held by the cache (e.g., network
	// connections). For in-memory caches, this is a no-op.
	Close() error
}

// Config holds the settings needed to build a cache.
type Config struct {
	// Provider selects the backend: "memory", "redis" or "none".
	Provider string

	// Size is the maximum number of pages for the in-memory LRU.
	Size int

	// TTL is the time-to-live for cached pages.
	TTL time.Duration

	// RedisAddress is the Redis/Valkey server address (e.g., "localhost:6379").
	RedisAddress string

	// RedisPassword is the password for the Redis/Valkey server.
	RedisPassword string

	// RedisDB is the Redis/Valkey database number.
	RedisDB int
}

// New builds a Cache for the configured provider. Every real backend is
// wrapped with hit/miss instrumentation labeled by provider name.
func New(cfg Config) (Cache, error) {
	switch cfg.Provider {
	case "", "none":
		return nopCache{}, nil
	case "memory":
		return newInstrumentedCache("memory", newMemoryCache(cfg)), nil
	case "redis":
		inner, err := newRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return newInstrumentedCache("redis", inner), nil
	default:
		return nil, fmt.Errorf("pagecache: unknown provider %q", cfg.Provider)
	}
}

// nopCache never hits and never stores.
type nopCache struct{}

func (nopCache) Get(string) ([]byte, bool) { return nil, false }
func (nopCache) Set(string, []byte)        {}
func (nopCache) Close() error              { return nil }
