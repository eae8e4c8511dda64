package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tvtally/internal/config"
	"tvtally/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// episodeField binds one field extractor to the policy applied when its node
// is missing: optional fields degrade to the sentinel preset on the entry,
// required fields fail the season parse. This table is the single place that
// decides sentinel-versus-fatal per field.
type episodeField struct {
	name     string
	required bool
	// apply extracts the field from the block into the entry. It reports
	// whether the node was found; a found-but-malformed value is an error.
	apply func(block *goquery.Selection, entry *models.EpisodeEntry) (bool, error)
}

var episodeFields = []episodeField{
	{name: "description", apply: applyDescription},
	{name: "rating", apply: applyRating},
	{name: "total_votes", apply: applyTotalVotes},
	{name: "episode_number", required: true, apply: applyEpisodeNumber},
}

// EpisodeParser parses a season's episode-listing page into episode entries.
// Only the episode-level fields are populated; the caller copies the
// series-level fields onto each row.
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode parser instance
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// ParseHtml extracts one EpisodeEntry per episode info block on the page.
func (p *EpisodeParser) ParseHtml(body io.Reader) ([]models.EpisodeEntry, error) {
	logger := config.GetLogger()

	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var entries []models.EpisodeEntry
	var blockErr error

	doc.Find(".info").EachWithBreak(func(i int, block *goquery.Selection) bool {
		entry := models.NewEpisodeEntry()
		for _, field := range episodeFields {
			found, err := field.apply(block, &entry)
			if err != nil {
				blockErr = fmt.Errorf("episode block %d: %s: %w", i+1, field.name, err)
				return false
			}
			if !found && field.required {
				blockErr = fmt.Errorf("episode block %d: missing required field %s", i+1, field.name)
				return false
			}
		}
		logger.Debug().
			Int("episode", entry.Episode).
			Float64("rating", entry.Rating).
			Int64("votes", entry.TotalVotes).
			Msg("Extracted episode block")
		entries = append(entries, entry)
		return true
	})
	if blockErr != nil {
		return nil, blockErr
	}

	return entries, nil
}

func applyDescription(block *goquery.Selection, entry *models.EpisodeEntry) (bool, error) {
	node := block.Find("div.item_description").First()
	if node.Length() == 0 {
		return false, nil
	}
	entry.Description = strings.TrimSpace(node.Text())
	return true, nil
}

func applyRating(block *goquery.Selection, entry *models.EpisodeEntry) (bool, error) {
	// The block contains several rating-star spans (the "rate this" widget
	// repeats the class); only the first one is the episode's own rating.
	node := block.Find("span.ipl-rating-star__rating").First()
	if node.Length() == 0 {
		return false, nil
	}
	text := strings.TrimSpace(node.Text())
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return true, fmt.Errorf("rating text %q is not a number", text)
	}
	entry.Rating = rating
	return true, nil
}

func applyTotalVotes(block *goquery.Selection, entry *models.EpisodeEntry) (bool, error) {
	node := block.Find("span.ipl-rating-star__total-votes").First()
	if node.Length() == 0 {
		return false, nil
	}
	// Vote counts render as "(1,234)"; strip parentheses and thousands
	// separators before converting.
	text := strings.NewReplacer("(", "", ")", "", ",", "").Replace(strings.TrimSpace(node.Text()))
	votes, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return true, fmt.Errorf("vote count text %q is not an integer", text)
	}
	entry.TotalVotes = votes
	return true, nil
}

func applyEpisodeNumber(block *goquery.Selection, entry *models.EpisodeEntry) (bool, error) {
	node := block.Find(`meta[itemprop="episodeNumber"]`).First()
	if node.Length() == 0 {
		return false, nil
	}
	content, exists := node.Attr("content")
	if !exists {
		return true, fmt.Errorf("episode-number metadata has no content attribute")
	}
	number, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return true, fmt.Errorf("episode-number content %q is not an integer", content)
	}
	entry.Episode = number
	return true, nil
}
