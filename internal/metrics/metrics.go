package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Scrape metrics
var (
	PagesFetchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pages_fetched_total",
			Help: "Total number of pages fetched, by HTTP status ('error' for transport failures).",
		},
		[]string{"status"},
	)

	ParseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parse_failures_total",
			Help: "Total number of page parses that failed, by page kind.",
		},
		[]string{"page"},
	)

	EpisodesScrapedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "episodes_scraped_total",
			Help: "Total number of episode rows collected.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PagesFetchedTotal,
		ParseFailuresTotal,
		EpisodesScrapedTotal,
	)
}
