package apperrors

import "fmt"

// ErrSeriesNotFound is returned when a series id or name matches no row of
// the top-list table.
type ErrSeriesNotFound struct {
	Key string
}

// Error implements the error interface.
func (e *ErrSeriesNotFound) Error() string {
	return fmt.Sprintf("series %q not found in top list", e.Key)
}

// Is allows for error checking with errors.Is().
func (e *ErrSeriesNotFound) Is(target error) bool {
	_, ok := target.(*ErrSeriesNotFound)
	return ok
}

// NewSeriesNotFoundError creates a new ErrSeriesNotFound.
func NewSeriesNotFoundError(key string) *ErrSeriesNotFound {
	return &ErrSeriesNotFound{Key: key}
}

// ErrAmbiguousSeries is returned when a series name matches more than one
// top-list row. Callers must retry with the unique series id before any page
// is fetched for that series.
type ErrAmbiguousSeries struct {
	Name    string
	Matches int
}

// Error implements the error interface.
func (e *ErrAmbiguousSeries) Error() string {
	return fmt.Sprintf("series name %q matches %d top-list entries, look it up by its unique id instead", e.Name, e.Matches)
}

// Is allows for error checking with errors.Is().
func (e *ErrAmbiguousSeries) Is(target error) bool {
	_, ok := target.(*ErrAmbiguousSeries)
	return ok
}

// NewAmbiguousSeriesError creates a new ErrAmbiguousSeries.
func NewAmbiguousSeriesError(name string, matches int) *ErrAmbiguousSeries {
	return &ErrAmbiguousSeries{Name: name, Matches: matches}
}

// ErrBadStatus is returned when a page fetch completes with a non-OK HTTP
// status.
type ErrBadStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("page %s returned status %d", e.URL, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrBadStatus) Is(target error) bool {
	_, ok := target.(*ErrBadStatus)
	return ok
}
