package models

// Sentinel values standing in for episode fields the source page did not
// carry. They distinguish "not found on the page" from a genuine zero or
// empty result.
const (
	RatingUnavailable      = float64(-1)
	VotesUnavailable       = int64(0)
	DescriptionUnavailable = "N/A"
)

// EpisodeEntry is one row of the episode-ratings table: one episode of one
// season of one series, with the series-level fields duplicated onto every
// row.
type EpisodeEntry struct {
	SeriesName       string  `json:"seriesName"`
	SeriesRank       int     `json:"seriesRank"`
	SeriesOriginYear int     `json:"seriesOriginYear"`
	SeriesLink       string  `json:"seriesLink"`
	SeriesSeasons    int     `json:"seriesSeasons"`
	Season           int     `json:"season"`
	Episode          int     `json:"episode"`
	Rating           float64 `json:"episodeRating"`
	TotalVotes       int64   `json:"episodeTotalVotes"`
	Description      string  `json:"episodeDescription"`
}

// NewEpisodeEntry returns an entry with every optional field preset to its
// sentinel, so row assembly only has to overwrite what the page provides.
func NewEpisodeEntry() EpisodeEntry {
	return EpisodeEntry{
		Rating:      RatingUnavailable,
		TotalVotes:  VotesUnavailable,
		Description: DescriptionUnavailable,
	}
}
