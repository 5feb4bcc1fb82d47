package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds the _count/_offset window requested by a caller.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads _count and _offset from the query string, clamping
// the limit to MaxLimit.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("_count"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset, _ := strconv.Atoi(c.QueryParam("_offset"))
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}
}

// Bounds returns the half-open slice range of the window over n items.
func (p Params) Bounds(n int) (lo, hi int) {
	lo = min(p.Offset, n)
	hi = min(lo+p.Limit, n)
	return lo, hi
}

// Page is one window of a listing.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Slice cuts the window described by p out of all.
func Slice[T any](all []T, p Params) Page[T] {
	lo, hi := p.Bounds(len(all))
	return Page[T]{
		Items:   all[lo:hi],
		Total:   len(all),
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: hi < len(all),
	}
}
