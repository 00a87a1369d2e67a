package models

import "math"

// MaxPageLimit caps the page size of every listing.
const MaxPageLimit = 100

// Pagination describes one page of a listing.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	Count      int   `json:"count"`
	TotalCount int64 `json:"totalCount"`
}

// NewPagination computes page totals for a listing.
func NewPagination(page, limit, count int, totalCount int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((totalCount + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Current: page, Total: pages, Count: count, TotalCount: totalCount}
}

// ClampLimit bounds a requested page size to [1, MaxPageLimit], using def when unset.
func ClampLimit(limit, def int) int {
	if limit < 1 {
		limit = def
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// PageSkip returns the number of documents before page, saturating instead of overflowing.
func PageSkip(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return int64(page-1) * int64(limit)
}
