package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"tvtally/internal/config"
	"tvtally/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// chartRowPattern matches the combined text of a chart title cell, which has
// the shape "<rank>. <title> (<year>)". Named groups keep malformed cells a
// clear parse error instead of an index failure on a split chain.
var chartRowPattern = regexp.MustCompile(`^(?P<rank>\d+)\.\s+(?P<title>.+?)\s+\((?P<year>\d{4})\)$`)

var (
	chartRankIdx  = chartRowPattern.SubexpIndex("rank")
	chartTitleIdx = chartRowPattern.SubexpIndex("title")
	chartYearIdx  = chartRowPattern.SubexpIndex("year")
)

// ChartParser parses the ranked top-TV listing page into series entries.
type ChartParser struct{}

// NewChartParser creates a new chart parser instance
func NewChartParser() *ChartParser {
	return &ChartParser{}
}

// ParseHtml parses the chart page and extracts one SeriesEntry per listing
// row. A single malformed row fails the whole parse: the chart is one fixed
// upstream page and a shape change there needs surfacing, not skipping.
func (p *ChartParser) ParseHtml(body io.Reader) ([]models.SeriesEntry, error) {
	logger := config.GetLogger()

	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var entries []models.SeriesEntry
	var rowErr error

	doc.Find("td.titleColumn").EachWithBreak(func(i int, cell *goquery.Selection) bool {
		entry, err := p.extractSeries(cell)
		if err != nil {
			rowErr = fmt.Errorf("chart row %d: %w", i+1, err)
			return false
		}
		logger.Debug().
			Int("rank", entry.Rank).
			Str("name", entry.Name).
			Int("year", entry.OriginYear).
			Msg("Extracted chart row")
		entries = append(entries, *entry)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	// The unique id is derived once the table is fully populated. It is what
	// disambiguates series sharing a display name.
	for i := range entries {
		entries[i].ID = models.SeriesID(entries[i].Name, entries[i].OriginYear)
	}

	logger.Info().Int("series", len(entries)).Msg("Parsed chart page")
	return entries, nil
}

// extractSeries pulls rank, title, origin year and the detail-page link out of
// a single title cell.
func (p *ChartParser) extractSeries(cell *goquery.Selection) (*models.SeriesEntry, error) {
	text := collapseWhitespace(cell.Text())

	m := chartRowPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("cell text %q does not match \"<rank>. <title> (<year>)\"", text)
	}

	rank, err := strconv.Atoi(m[chartRankIdx])
	if err != nil {
		return nil, fmt.Errorf("rank %q: %w", m[chartRankIdx], err)
	}
	year, err := strconv.Atoi(m[chartYearIdx])
	if err != nil {
		return nil, fmt.Errorf("origin year %q: %w", m[chartYearIdx], err)
	}

	link, exists := cell.Find("a").First().Attr("href")
	if !exists {
		return nil, fmt.Errorf("cell %q has no anchor with an href", text)
	}

	return &models.SeriesEntry{
		Name:       m[chartTitleIdx],
		Rank:       rank,
		OriginYear: year,
		Link:       link,
	}, nil
}

// collapseWhitespace folds all runs of whitespace (the cell text spans several
// child nodes with newlines and indentation) into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
