package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// seasonSelectorID identifies the season-selector control on a series detail
// page. The control only exists for multi-season series.
const seasonSelectorID = "browse-episodes-season"

// SeasonParser parses a series detail page into its season count.
type SeasonParser struct{}

// NewSeasonParser creates a new season parser instance
func NewSeasonParser() *SeasonParser {
	return &SeasonParser{}
}

// ParseHtml returns the number of seasons advertised on a series detail page.
// A page without the season selector belongs to a single-season series, so
// the count defaults to 1. When the selector is present its descriptive label
// carries the count as the leading token (e.g. "8 seasons").
func (p *SeasonParser) ParseHtml(body io.Reader) (int, error) {
	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return 0, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selector := doc.Find("select#" + seasonSelectorID)
	if selector.Length() == 0 {
		return 1, nil
	}

	label, exists := selector.Attr("aria-label")
	if !exists {
		return 0, fmt.Errorf("season selector has no aria-label attribute")
	}

	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, fmt.Errorf("season selector label is empty")
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("season selector label %q has no leading integer: %w", label, err)
	}
	if count < 1 {
		return 0, fmt.Errorf("season selector label %q yields non-positive count %d", label, count)
	}

	return count, nil
}
