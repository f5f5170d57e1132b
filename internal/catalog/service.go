// Package catalog is the browse surface over the platform's product list.
// Pagination goes upstream; search, category filtering and sorting apply to
// the fetched page only, so a narrowed page can come back shorter than its
// pageSize while totalCount still describes the unfiltered collection.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

type productLister interface {
	ListProducts(ctx context.Context, params pagination.Params) (types.Page[upstream.Product], error)
}

// Sort keys accepted by Browse.
const (
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Filters narrow and order one fetched catalog page.
type Filters struct {
	Query    string
	Category string
	Sort     string
}

// Service exposes catalog browsing.
type Service interface {
	Browse(ctx context.Context, filters Filters, params pagination.Params) (types.Page[upstream.Product], error)
}

type service struct {
	products productLister
}

// NewService builds a catalog service over the platform client.
func NewService(products productLister) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	return &service{products: products}, nil
}

// Browse fetches one page and applies the filters to it.
func (s *service) Browse(ctx context.Context, filters Filters, params pagination.Params) (types.Page[upstream.Product], error) {
	if err := validateSort(filters.Sort); err != nil {
		return types.Page[upstream.Product]{}, err
	}

	page, err := s.products.ListProducts(ctx, params)
	if err != nil {
		return types.Page[upstream.Product]{}, err
	}

	items := filterItems(page.Items, filters)
	sortItems(items, filters.Sort)
	page.Items = items
	return page, nil
}

func validateSort(key string) error {
	switch key {
	case "", SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sort %q", key))
	}
}

func filterItems(items []upstream.Product, filters Filters) []upstream.Product {
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	category := strings.TrimSpace(filters.Category)

	kept := make([]upstream.Product, 0, len(items))
	for _, item := range items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func matchesQuery(item upstream.Product, query string) bool {
	return strings.Contains(strings.ToLower(item.Name), query) ||
		strings.Contains(strings.ToLower(item.SKU), query)
}

func sortItems(items []upstream.Product, key string) {
	switch key {
	case SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) > strings.ToLower(items[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.LessThan(items[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[j].Price.LessThan(items[i].Price)
		})
	}
}
