package client

import (
	"bytes"
	"context"
	"fmt"

	"tvtally/internal/config"
	"tvtally/internal/metrics"
	"tvtally/internal/models"
)

// SeasonCount fetches the series detail page and resolves the total number
// of seasons. Single-season series have no season selector on this site and
// resolve to 1.
func (c *client) SeasonCount(ctx context.Context, series models.SeriesEntry) (int, error) {
	logger := config.GetLogger()
	logger.Info().Str("series", series.ID).Msg("Resolving season count")

	url := c.baseURL + series.Link
	body, err := c.fetchPage(ctx, url, true)
	if err != nil {
		return 0, fmt.Errorf("fetch detail page for %s: %w", series.ID, err)
	}

	count, err := c.seasonParser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		metrics.ParseFailuresTotal.WithLabelValues("title").Inc()
		return 0, fmt.Errorf("parse detail page for %s: %w", series.ID, err)
	}

	logger.Info().Str("series", series.ID).Int("seasons", count).Msg("Resolved season count")
	return count, nil
}
