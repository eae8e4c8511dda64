package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"tvtally/internal/models"
)

// Column order matches the scraped tables: series metadata first, then the
// per-episode fields.
var (
	seriesHeader = []string{
		"series_name", "series_rank", "series_origin_year", "series_link", "series_id",
	}
	episodeHeader = []string{
		"series_name", "series_rank", "series_origin_year", "series_link",
		"series_n_seasons", "season", "episode",
		"episode_rating", "episode_total_votes", "episode_description",
	}
)

// WriteSeriesCSV writes the top-list table as CSV, one row per ranked series.
func WriteSeriesCSV(w io.Writer, list models.TopList) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, entry := range list {
		record := []string{
			entry.Name,
			strconv.Itoa(entry.Rank),
			strconv.Itoa(entry.OriginYear),
			entry.Link,
			entry.ID,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEpisodesCSV writes the episode-ratings table as CSV, one row per
// episode per season per series.
func WriteEpisodesCSV(w io.Writer, entries []models.EpisodeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(episodeHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		record := []string{
			entry.SeriesName,
			strconv.Itoa(entry.SeriesRank),
			strconv.Itoa(entry.SeriesOriginYear),
			entry.SeriesLink,
			strconv.Itoa(entry.SeriesSeasons),
			strconv.Itoa(entry.Season),
			strconv.Itoa(entry.Episode),
			strconv.FormatFloat(entry.Rating, 'f', -1, 64),
			strconv.FormatInt(entry.TotalVotes, 10),
			entry.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
