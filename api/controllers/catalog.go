package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/api/validators"
	"github.com/nmorales/distromart-storefront/internal/catalog"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/pagination"
)

type productGetter interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*upstream.Product, error)
}

// CatalogBrowse lists one catalog page with in-page search, category filter
// and sorting.
func CatalogBrowse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		q := r.URL.Query()
		filters := catalog.Filters{
			Query:    q.Get("q"),
			Category: q.Get("category"),
			Sort:     q.Get("sort"),
		}

		page, err := svc.Browse(r.Context(), filters, pagination.FromQuery(q))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CatalogProductDetail returns one catalog record.
func CatalogProductDetail(products productGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
