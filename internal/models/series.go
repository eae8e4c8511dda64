package models

import (
	"fmt"

	"tvtally/internal/apperrors"
)

// SeriesEntry is one row of the ranked chart table.
type SeriesEntry struct {
	Name       string `json:"seriesName"`
	Rank       int    `json:"seriesRank"`
	OriginYear int    `json:"seriesOriginYear"`
	Link       string `json:"seriesLink"`
	// ID is derived from Name and OriginYear. It stays unique even when two
	// chart entries share a name (e.g. the two House of Cards).
	ID string `json:"seriesId"`
}

// SeriesID derives the unique chart identifier from a name and origin year.
func SeriesID(name string, year int) string {
	return fmt.Sprintf("%s (%d)", name, year)
}

// TopList is the ranked listing of series scraped from the chart page, in
// chart order.
type TopList []SeriesEntry

// Find resolves a series by its unique id.
func (t TopList) Find(id string) (SeriesEntry, error) {
	for _, entry := range t {
		if entry.ID == id {
			return entry, nil
		}
	}
	return SeriesEntry{}, apperrors.NewSeriesNotFoundError(id)
}

// FindByName resolves a series by display name. The name must match exactly
// one chart entry; an ambiguous name is a typed error the caller has to
// handle before fetching any page for that series.
func (t TopList) FindByName(name string) (SeriesEntry, error) {
	var match SeriesEntry
	matches := 0
	for _, entry := range t {
		if entry.Name == name {
			match = entry
			matches++
		}
	}
	switch matches {
	case 0:
		return SeriesEntry{}, apperrors.NewSeriesNotFoundError(name)
	case 1:
		return match, nil
	default:
		return SeriesEntry{}, apperrors.NewAmbiguousSeriesError(name, matches)
	}
}
