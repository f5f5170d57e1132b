package types

// Page is the paginated collection envelope shared with the distribution
// platform API. Pagination metadata always passes through untouched; the
// storefront only ever filters or sorts the items of a page it already holds.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// Map converts the items of a page while preserving its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{
		Items:      make([]U, 0, len(p.Items)),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
	for _, item := range p.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}
