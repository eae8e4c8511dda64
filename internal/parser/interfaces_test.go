package parser

import "tvtally/internal/models"

// The concrete parsers must stay usable through the generic interfaces the
// scraping client is typed against.
var (
	_ Parser[models.SeriesEntry]  = NewChartParser()
	_ SingleResultParser[int]     = NewSeasonParser()
	_ Parser[models.EpisodeEntry] = NewEpisodeParser()
)
