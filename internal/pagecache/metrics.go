package pagecache

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_hits_total",
			Help: "Total number of page cache hits, by provider.",
		},
		[]string{"provider"},
	)

	cacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_misses_total",
			Help: "Total number of page cache misses, by provider.",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(cacheHitsTotal, cacheMissesTotal)
}

// instrumentedCache wraps a Cache and counts hits and misses under the
// provider's label.
type instrumentedCache struct {
	inner  Cache
	hits   prometheus.Counter
	misses prometheus.Counter
}

func newInstrumentedCache(provider string, inner Cache) *instrumentedCache {
	return &instrumentedCache{
		inner:  inner,
		hits:   cacheHitsTotal.WithLabelValues(provider),
		misses: cacheMissesTotal.WithLabelValues(provider),
	}
}

func (c *instrumentedCache) Get(url string) ([]byte, bool) {
	body, ok := c.inner.Get(url)
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return body, ok
}

func (c *instrumentedCache) Set(url string, body []byte) {
	c.inner.Set(url, body)
}

func (c *instrumentedCache) Close() error {
	return c.inner.Close()
}
