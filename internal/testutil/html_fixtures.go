package testutil

import (
	"fmt"
	"strings"
)

// BoolPtr is a helper for creating *bool values in tests
func BoolPtr(v bool) *bool {
	return &v
}

// ChartRowOptions contains options for generating one row of the ranked
// chart page.
type ChartRowOptions struct {
	Rank  int
	Title string
	Year  int
	Link  string
	// CellText overrides the generated "<rank>. <title> (<year>)" cell text,
	// for malformed-row tests.
	CellText string
	// IncludeLink controls whether the anchor element is emitted (default true).
	IncludeLink *bool
}

// GenerateChartHTML generates the ranked listing page structure: one
// td.titleColumn cell per series whose combined text reads
// "<rank>. <title> (<year>)".
func GenerateChartHTML(rows []ChartRowOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<body>
<table class="chart full-width">
	<tbody class="lister-list">
`)

	for _, row := range rows {
		includeLink := true
		if row.IncludeLink != nil {
			includeLink = *row.IncludeLink
		}

		anchor := ""
		if includeLink {
			anchor = fmt.Sprintf(`<a href="%s" title="%s">%s</a>`, row.Link, row.Title, row.Title)
		} else {
			anchor = row.Title
		}

		if row.CellText != "" {
			fmt.Fprintf(&sb, `
		<tr>
			<td class="titleColumn">
				%s
			</td>
		</tr>`, row.CellText)
			continue
		}

		fmt.Fprintf(&sb, `
		<tr>
			<td class="titleColumn">
				%d.
				%s
				<span class="secondaryInfo">(%d)</span>
			</td>
		</tr>`, row.Rank, anchor, row.Year)
	}

	sb.WriteString(`
	</tbody>
</table>
</body>
</html>`)

	return sb.String()
}

// TitlePageOptions contains options for generating a series detail page.
type TitlePageOptions struct {
	// Seasons is the advertised season count. Values below 2 omit the season
	// selector entirely, matching single-season series on the real site.
	Seasons int
	// SelectorLabel overrides the generated "<n> seasons" aria-label.
	SelectorLabel string
	// OmitLabel drops the aria-label attribute from the selector.
	OmitLabel bool
}

// GenerateTitleHTML generates a series detail page, with the season-selector
// control present only for multi-season series.
func GenerateTitleHTML(opts TitlePageOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<body>
	<div class="title-overview">
		<h1>Some Series</h1>
	</div>
`)

	if opts.Seasons > 1 || opts.SelectorLabel != "" || opts.OmitLabel {
		label := opts.SelectorLabel
		if label == "" {
			label = fmt.Sprintf("%d seasons", opts.Seasons)
		}

		attr := fmt.Sprintf(` aria-label="%s"`, label)
		if opts.OmitLabel {
			attr = ""
		}

		fmt.Fprintf(&sb, `	<select id="browse-episodes-season"%s>
`, attr)
		for i := opts.Seasons; i >= 1; i-- {
			fmt.Fprintf(&sb, `		<option value="%d">%d</option>
`, i, i)
		}
		sb.WriteString(`	</select>
`)
	}

	sb.WriteString(`</body>
</html>`)

	return sb.String()
}

// EpisodeBlockOptions contains options for generating one episode info block
// on a season page.
type EpisodeBlockOptions struct {
	// Number is the content attribute of the episode-number metadata node.
	Number string
	// IncludeNumber controls whether the metadata node is emitted (default true).
	IncludeNumber *bool
	// Rating is the rating-star text, e.g. "8.4". Empty omits the node.
	Rating string
	// ExtraRatings are additional rating-star spans after the first, mimicking
	// the rate-this widget that repeats the class elsewhere in the block.
	ExtraRatings []string
	// Votes is the vote-count text, e.g. "(1,234)". Empty omits the node.
	Votes string
	// Description is the episode description. Empty omits the node.
	Description string
	Title       string
}

// GenerateEpisodeListHTML generates a season's episode-listing page with one
// div.info block per episode.
func GenerateEpisodeListHTML(blocks []EpisodeBlockOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<body>
<div class="list detail eplist">
`)

	for i, block := range blocks {
		includeNumber := true
		if block.IncludeNumber != nil {
			includeNumber = *block.IncludeNumber
		}

		title := block.Title
		if title == "" {
			title = fmt.Sprintf("Episode %d", i+1)
		}

		sb.WriteString(`	<div class="info" itemprop="episodes">
`)
		if includeNumber {
			fmt.Fprintf(&sb, `		<meta itemprop="episodeNumber" content="%s"/>
`, block.Number)
		}
		fmt.Fprintf(&sb, `		<strong><a href="/title/tt0000000/">%s</a></strong>
`, title)

		if block.Rating != "" || block.Votes != "" || len(block.ExtraRatings) > 0 {
			sb.WriteString(`		<div class="ipl-rating-widget">
			<div class="ipl-rating-star">
`)
			if block.Rating != "" {
				fmt.Fprintf(&sb, `				<span class="ipl-rating-star__rating">%s</span>
`, block.Rating)
			}
			if block.Votes != "" {
				fmt.Fprintf(&sb, `				<span class="ipl-rating-star__total-votes">%s</span>
`, block.Votes)
			}
			sb.WriteString(`			</div>
`)
			for _, extra := range block.ExtraRatings {
				fmt.Fprintf(&sb, `			<div class="ipl-rating-star ipl-rating-interactive__star">
				<span class="ipl-rating-star__rating">%s</span>
			</div>
`, extra)
			}
			sb.WriteString(`		</div>
`)
		}

		if block.Description != "" {
			fmt.Fprintf(&sb, `		<div class="item_description" itemprop="description">
			%s
		</div>
`, block.Description)
		}

		sb.WriteString(`	</div>
`)
	}

	sb.WriteString(`</div>
</body>
</html>`)

	return sb.String()
}

// GenerateEmptyHTML returns a minimal HTML document with an empty body.
func GenerateEmptyHTML() string {
	return `<html><body></body></html>`
}
