package export

import (
	"io"
	"strconv"

	"tvtally/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var votesPrinter = message.NewPrinter(language.English)

// RenderSeriesTable renders the top-list table for the console.
func RenderSeriesTable(w io.Writer, list models.TopList) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Rank", "Series", "Year", "Link"})
	for _, entry := range list {
		t.AppendRow(table.Row{entry.Rank, entry.Name, entry.OriginYear, entry.Link})
	}
	t.Render()
}

// RenderEpisodesTable renders the episode-ratings table for the console, with
// a footer summing votes across the listed episodes.
func RenderEpisodesTable(w io.Writer, entries []models.EpisodeEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Series", "Season", "Episode", "Rating", "Votes", "Description"})

	var totalVotes int64
	for _, entry := range entries {
		rating := "-"
		if entry.Rating != models.RatingUnavailable {
			rating = strconv.FormatFloat(entry.Rating, 'f', 1, 64)
		}
		t.AppendRow(table.Row{
			entry.SeriesName,
			entry.Season,
			entry.Episode,
			rating,
			votesPrinter.Sprintf("%d", entry.TotalVotes),
			truncate(entry.Description, 60),
		})
		totalVotes += entry.TotalVotes
	}
	t.AppendFooter(table.Row{"", "", len(entries), "", votesPrinter.Sprintf("%d", totalVotes), ""})
	t.Render()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
