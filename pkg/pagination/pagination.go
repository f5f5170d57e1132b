package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 25
	// MaxPageSize caps how many rows any collection query can request.
	MaxPageSize = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// FromQuery pulls page/pageSize from a request query string. Unparseable
// values fall back to defaults rather than erroring; the upstream API is
// authoritative about what a page actually contains.
func FromQuery(q url.Values) Params {
	return Params{
		Page:     atoiOrZero(q.Get("page")),
		PageSize: atoiOrZero(q.Get("pageSize")),
	}.Normalize()
}

// Normalize enforces the configured default and maximum page sizes.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Encode renders the params as query values for an upstream request.
func (p Params) Encode(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	norm := p.Normalize()
	q.Set("page", strconv.Itoa(norm.Page))
	q.Set("pageSize", strconv.Itoa(norm.PageSize))
	return q
}

// TotalPages computes the page count for a collection.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

func atoiOrZero(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
