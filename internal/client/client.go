package client

import (
	"context"
	"net/http"
	"time"

	"tvtally/internal/config"
	"tvtally/internal/models"
	"tvtally/internal/pagecache"
	"tvtally/internal/parser"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
)

// Client defines the interface for scraping the chart site
type Client interface {
	// TopList fetches the ranked listing page once and returns the series
	// table with derived unique ids.
	TopList(ctx context.Context) (models.TopList, error)

	// SeasonCount resolves how many seasons a chart series has. Series
	// without a season selector on their detail page count as 1.
	SeasonCount(ctx context.Context, series models.SeriesEntry) (int, error)

	// EpisodeRatings collects every episode row for the series across all of
	// its seasons.
	EpisodeRatings(ctx context.Context, series models.SeriesEntry) ([]models.EpisodeEntry, error)

	// StreamEpisodeRatings emits episode rows as season pages are parsed.
	// The channel is closed when all seasons have been processed.
	// Errors are sent as StreamResult with a non-nil Err field.
	StreamEpisodeRatings(ctx context.Context, series models.SeriesEntry) <-chan models.StreamResult[models.EpisodeEntry]

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	chartPath     string
	userAgent     string
	chartParser   parser.Parser[models.SeriesEntry]
	seasonParser  parser.SingleResultParser[int]
	episodeParser parser.Parser[models.EpisodeEntry]
	throttle      Throttle
	pages         pagecache.Cache
}

// NewClient creates a new client instance from config. The HTTP stack layers
// the retry policy over the compression transport, so every fetch gets
// transparent decompression plus retry-with-backoff on transient failures.
func NewClient(cfg *config.Config) (Client, error) {
	logger := config.GetLogger()

	// Parse timeout duration
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2, etc.), then stack decompression and retries on top.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	transport := failsafehttp.NewRoundTripper(
		newCompressionTransport(baseTransport),
		newRetryPolicy(cfg),
	)

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	throttle, err := NewThrottle(cfg)
	if err != nil {
		return nil, err
	}

	pages, err := newPageCache(cfg)
	if err != nil {
		return nil, err
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	return &client{
		httpClient:    httpClient,
		baseURL:       cfg.BaseURL,
		chartPath:     cfg.ChartPath,
		userAgent:     userAgent,
		chartParser:   parser.NewChartParser(),
		seasonParser:  parser.NewSeasonParser(),
		episodeParser: parser.NewEpisodeParser(),
		throttle:      throttle,
		pages:         pages,
	}, nil
}

func newPageCache(cfg *config.Config) (pagecache.Cache, error) {
	ttl := time.Hour
	if cfg.Cache.TTL != "" {
		if parsed, err := time.ParseDuration(cfg.Cache.TTL); err == nil {
			ttl = parsed
		} else {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 1h")
		}
	}
	return pagecache.New(pagecache.Config{
		Provider:      cfg.Cache.Provider,
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
	})
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.pages.Close()
}
