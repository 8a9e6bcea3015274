package services

import "math"

// MaxPageLimit caps the page size on every paginated listing.
const MaxPageLimit = 50

// Pagination is the metadata block attached to every paginated response.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPagination computes the metadata for one page. A page past the end is
// valid: it pairs with an empty item list, not an error.
func NewPagination(page, limit int, total int64) *Pagination {
	return &Pagination{
		CurrentPage:     page,
		TotalPages:      int(math.Ceil(float64(total) / float64(limit))),
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     int64(page*limit) < total,
		HasPreviousPage: page > 1,
	}
}

// ClampPage normalizes raw page/limit query values: page defaults to 1,
// a missing or invalid limit defaults to defaultLimit, an oversized limit
// clamps to MaxPageLimit.
func ClampPage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
