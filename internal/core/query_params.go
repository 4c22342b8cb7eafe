// internal/core/query_params.go
package core

import (
	"net/url"
	"strconv"
)

// Pagination defaults and bounds
const (
	DefaultGamesPerPage    = 10
	DefaultRequestsPerPage = 20
	MaxPerPage             = 100
)

// PageParams holds parsed 1-indexed pagination query parameters.
type PageParams struct {
	Page    int
	PerPage int
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ParsePageParams extracts 'page' and 'per_page' from query parameters.
// Malformed or out-of-range values fall back to defaults rather than
// erroring: page is coerced to >= 1 and per_page clamped to [1, MaxPerPage].
func ParsePageParams(queryParams url.Values, defaultPerPage int) PageParams {
	params := PageParams{
		Page:    1,
		PerPage: defaultPerPage,
	}

	if pageStr := queryParams.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			params.Page = page
		}
	}

	if perPageStr := queryParams.Get("per_page"); perPageStr != "" {
		if perPage, err := strconv.Atoi(perPageStr); err == nil && perPage >= 1 {
			params.PerPage = perPage
		}
	}
	if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}

	return params
}

// TotalPages computes the page count for a row total. Zero rows yield
// zero pages; callers still treat any page beyond the last as empty.
func TotalPages(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}
