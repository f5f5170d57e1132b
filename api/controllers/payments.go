package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmorales/distromart-storefront/api/middleware"
	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/api/validators"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// PaymentsService is the slice of the platform client the payment controllers
// consume.
type PaymentsService interface {
	RecordPayment(ctx context.Context, req upstream.RecordPaymentRequest) (*upstream.Payment, error)
	VerifyPayment(ctx context.Context, id uuid.UUID) (*upstream.Payment, error)
	ListPayments(ctx context.Context, params pagination.Params) (types.Page[upstream.Payment], error)
	CustomerLedger(ctx context.Context, role string, customerID uuid.UUID, params pagination.Params) (types.Page[upstream.LedgerEntry], error)
}

type recordPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customerId" validate:"required"`
	OrderID    *uuid.UUID      `json:"orderId"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Method     string          `json:"method" validate:"required"`
	Reference  string          `json:"reference"`
}

// AdminPaymentRecord records a customer payment.
func AdminPaymentRecord(svc PaymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Amount.LessThanOrEqual(decimal.Zero) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive"))
			return
		}

		payment, err := svc.RecordPayment(r.Context(), upstream.RecordPaymentRequest{
			CustomerID: payload.CustomerID,
			OrderID:    payload.OrderID,
			Amount:     payload.Amount,
			Method:     payload.Method,
			Reference:  payload.Reference,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// AdminPaymentVerify marks a recorded payment as verified.
func AdminPaymentVerify(svc PaymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}
		paymentID, err := validators.UUIDParam(r, "paymentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.VerifyPayment(r.Context(), paymentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

// AdminPaymentList pages recorded payments.
func AdminPaymentList(svc PaymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		page, err := svc.ListPayments(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CustomerLedger pages the acting customer's account statement.
func CustomerLedger(svc PaymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}
		customerID, err := customerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.CustomerLedger(r.Context(), middleware.RoleFromContext(r.Context()), customerID, pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminCustomerLedger pages any customer's account statement.
func AdminCustomerLedger(svc PaymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}
		customerID, err := validators.UUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.CustomerLedger(r.Context(), "admin", customerID, pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
