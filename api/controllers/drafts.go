package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/api/middleware"
	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/api/validators"
	draftsvc "github.com/nmorales/distromart-storefront/internal/draft"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
)

// draftScope pulls the rep and session identifiers the draft store is keyed
// by. Both come from the access token.
func draftScope(r *http.Request) (repID, sessionID string, err error) {
	repID = middleware.UserIDFromContext(r.Context())
	sessionID = middleware.SessionIDFromContext(r.Context())
	if repID == "" || sessionID == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing")
	}
	return repID, sessionID, nil
}

// DraftFetch returns the rep's current order draft.
func DraftFetch(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.Get(r.Context(), repID, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

type draftCustomerRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
}

// DraftSetCustomer points the draft at a customer account.
func DraftSetCustomer(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload draftCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SetCustomer(r.Context(), repID, sessionID, payload.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftAddItem puts a product on the draft.
func DraftAddItem(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddItem(r.Context(), repID, sessionID, payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DraftSetQuantity applies a direct quantity edit to a drafted item.
func DraftSetQuantity(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SetQuantity(r.Context(), repID, sessionID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DraftRemoveItem drops a product from the draft.
func DraftRemoveItem(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.RemoveItem(r.Context(), repID, sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftClear discards the draft.
func DraftClear(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Clear(r.Context(), repID, sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "discarded"})
	}
}

type draftSubmitRequest struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	Notes           string `json:"notes"`
}

// DraftSubmit places the draft as an order on behalf of its customer.
func DraftSubmit(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		repID, sessionID, err := draftScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload draftSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), repID, sessionID, draftsvc.SubmitInput{
			DeliveryAddress: payload.DeliveryAddress,
			Notes:           payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
