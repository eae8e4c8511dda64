package client

import (
	"bytes"
	"context"
	"fmt"

	"tvtally/internal/config"
	"tvtally/internal/metrics"
	"tvtally/internal/models"
)

// TopList fetches the ranked listing page and parses it into the series
// table. The chart is fetched exactly once per call and is not throttled.
func (c *client) TopList(ctx context.Context) (models.TopList, error) {
	logger := config.GetLogger()

	url := c.baseURL + c.chartPath
	logger.Info().Str("url", url).Msg("Fetching top chart")

	body, err := c.fetchPage(ctx, url, false)
	if err != nil {
		return nil, fmt.Errorf("fetch chart: %w", err)
	}

	entries, err := c.chartParser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		metrics.ParseFailuresTotal.WithLabelValues("chart").Inc()
		return nil, fmt.Errorf("parse chart: %w", err)
	}

	return models.TopList(entries), nil
}
