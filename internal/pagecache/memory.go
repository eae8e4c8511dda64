package pagecache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryCache wraps hashicorp/golang-lru/v2/expirable to implement the Cache
// interface for a single run.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(cfg Config) *memoryCache {
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](cfg.Size, nil, cfg.TTL),
	}
}

func (m *memoryCache) Get(url string) ([]byte, bool) {
	return m.inner.Get(url)
}

func (m *memoryCache) Set(url string, body []byte) {
	m.inner.Add(url, body)
}

func (m *memoryCache) Close() error {
	return nil
}
