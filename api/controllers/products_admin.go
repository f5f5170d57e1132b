package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/api/validators"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
)

// ProductAdminService is the slice of the platform client the admin catalog
// controllers consume.
type ProductAdminService interface {
	CreateProduct(ctx context.Context, input upstream.ProductInput) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input upstream.ProductInput) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRequest struct {
	Name                  string          `json:"name" validate:"required"`
	SKU                   string          `json:"sku" validate:"required"`
	Category              string          `json:"category" validate:"required"`
	Unit                  string          `json:"unit" validate:"required"`
	Price                 decimal.Decimal `json:"price" validate:"required"`
	StockQuantity         *int            `json:"stockQuantity"`
	AllowBackorder        bool            `json:"allowBackorder"`
	BackorderLeadTimeDays *int            `json:"backorderLeadTimeDays"`
	BackorderLimit        *int            `json:"backorderLimit"`
	IsActive              bool            `json:"isActive"`
}

func (p productRequest) toInput() upstream.ProductInput {
	return upstream.ProductInput{
		Name:                  p.Name,
		SKU:                   p.SKU,
		Category:              p.Category,
		Unit:                  p.Unit,
		Price:                 p.Price,
		StockQuantity:         p.StockQuantity,
		AllowBackorder:        p.AllowBackorder,
		BackorderLeadTimeDays: p.BackorderLeadTimeDays,
		BackorderLimit:        p.BackorderLimit,
		IsActive:              p.IsActive,
	}
}

// AdminProductCreate adds a catalog record.
func AdminProductCreate(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate replaces a catalog record.
func AdminProductUpdate(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a catalog record.
func AdminProductDelete(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}
		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
