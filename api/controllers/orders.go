package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/api/middleware"
	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/api/validators"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// OrdersService is the slice of the platform client the order controllers
// consume.
type OrdersService interface {
	ListOrders(ctx context.Context, role string, filter upstream.OrderFilter, params pagination.Params) (types.Page[upstream.Order], error)
	GetOrder(ctx context.Context, role string, id uuid.UUID) (*upstream.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*upstream.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*upstream.Order, error)
	RejectOrder(ctx context.Context, id uuid.UUID, reason string) (*upstream.Order, error)
}

// OrderList pages orders for the acting role. Admins may also narrow by
// status and customer.
func OrderList(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		q := r.URL.Query()
		filter := upstream.OrderFilter{Status: q.Get("status")}
		if raw := q.Get("customerId"); raw != "" {
			customerID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
				return
			}
			filter.CustomerID = &customerID
		}

		page, err := svc.ListOrders(r.Context(), middleware.RoleFromContext(r.Context()), filter, pagination.FromQuery(q))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// OrderDetail returns one order for the acting role.
func OrderDetail(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), middleware.RoleFromContext(r.Context()), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderCancel cancels the customer's own order.
func OrderCancel(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CancelOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminOrderStatus transitions an order. The body is a bare JSON string with
// the new status, forwarded to the platform unchanged.
func AdminOrderStatus(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := validators.DecodeRawString(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateOrderStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminOrderReject declines an order. The body is a bare JSON string carrying
// the rejection reason.
func AdminOrderReject(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reason, err := validators.DecodeRawString(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.RejectOrder(r.Context(), orderID, reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
