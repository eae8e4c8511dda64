package client

import (
	"bytes"
	"context"
	"fmt"

	"tvtally/internal/config"
	"tvtally/internal/metrics"
	"tvtally/internal/models"
)

// StreamEpisodeRatings resolves the series' season count, then fetches one
// page per season and emits one enriched EpisodeEntry per episode block as
// each page is parsed. Rows are produced lazily; callers that want the whole
// table collect the channel once (see EpisodeRatings).
func (c *client) StreamEpisodeRatings(ctx context.Context, series models.SeriesEntry) <-chan models.StreamResult[models.EpisodeEntry] {
	ch := make(chan models.StreamResult[models.EpisodeEntry])

	go func() {
		defer close(ch)
		logger := config.GetLogger()

		send := func(res models.StreamResult[models.EpisodeEntry]) bool {
			select {
			case ch <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}

		seasons, err := c.SeasonCount(ctx, series)
		if err != nil {
			send(models.StreamResult[models.EpisodeEntry]{Err: err})
			return
		}

		logger.Info().Str("series", series.ID).Int("seasons", seasons).Msg("Collecting episode ratings")

		total := 0
		for season := 1; season <= seasons; season++ {
			entries, err := c.fetchSeasonEpisodes(ctx, series, seasons, season)
			if err != nil {
				send(models.StreamResult[models.EpisodeEntry]{Err: err})
				return
			}
			for _, entry := range entries {
				if !send(models.StreamResult[models.EpisodeEntry]{Value: entry}) {
					return
				}
			}
			total += len(entries)
			logger.Info().
				Str("series", series.ID).
				Int("season", season).
				Int("episodes", len(entries)).
				Msg("Season scraped")
		}

		logger.Info().Str("series", series.ID).Int("total_episodes", total).Msg("Finished collecting episode ratings")
	}()

	return ch
}

// EpisodeRatings collects the streamed rows into the final table. The first
// error aborts the collection with no partial result.
func (c *client) EpisodeRatings(ctx context.Context, series models.SeriesEntry) ([]models.EpisodeEntry, error) {
	var entries []models.EpisodeEntry
	for res := range c.StreamEpisodeRatings(ctx, series) {
		if res.Err != nil {
			return nil, res.Err
		}
		entries = append(entries, res.Value)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// fetchSeasonEpisodes fetches one season's episode-listing page, parses it,
// and duplicates the series-level fields onto every row.
func (c *client) fetchSeasonEpisodes(ctx context.Context, series models.SeriesEntry, seasons, season int) ([]models.EpisodeEntry, error) {
	url := fmt.Sprintf("%s%sepisodes?season=%d", c.baseURL, series.Link, season)

	body, err := c.fetchPage(ctx, url, true)
	if err != nil {
		return nil, fmt.Errorf("fetch season %d of %s: %w", season, series.ID, err)
	}

	entries, err := c.episodeParser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		metrics.ParseFailuresTotal.WithLabelValues("episodes").Inc()
		return nil, fmt.Errorf("parse season %d of %s: %w", season, series.ID, err)
	}

	for i := range entries {
		entries[i].SeriesName = series.Name
		entries[i].SeriesRank = series.Rank
		entries[i].SeriesOriginYear = series.OriginYear
		entries[i].SeriesLink = series.Link
		entries[i].SeriesSeasons = seasons
		entries[i].Season = season
	}

	metrics.EpisodesScrapedTotal.Add(float64(len(entries)))
	return entries, nil
}
