package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/api/validators"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// RepsService is the slice of the platform client the rep field controllers
// consume.
type RepsService interface {
	ListRoutes(ctx context.Context, params pagination.Params) (types.Page[upstream.Route], error)
	ListVisits(ctx context.Context, routeID uuid.UUID, params pagination.Params) (types.Page[upstream.Visit], error)
	GetVisit(ctx context.Context, visitID uuid.UUID) (*upstream.Visit, error)
	CheckInVisit(ctx context.Context, visitID uuid.UUID) (*upstream.Visit, error)
	CompleteVisit(ctx context.Context, visitID uuid.UUID, notes string) (*upstream.Visit, error)
	ListCustomers(ctx context.Context, params pagination.Params) (types.Page[upstream.Customer], error)
}

// RepRoutes pages the acting rep's routes.
func RepRoutes(svc RepsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rep service unavailable"))
			return
		}
		page, err := svc.ListRoutes(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// RepRouteVisits pages the stops on one route.
func RepRouteVisits(svc RepsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rep service unavailable"))
			return
		}
		routeID, err := validators.UUIDParam(r, "routeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ListVisits(r.Context(), routeID, pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// RepVisitDetail returns one stop.
func RepVisitDetail(svc RepsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rep service unavailable"))
			return
		}
		visitID, err := validators.UUIDParam(r, "visitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.GetVisit(r.Context(), visitID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

// RepVisitCheckIn marks arrival at a stop.
func RepVisitCheckIn(svc RepsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rep service unavailable"))
			return
		}
		visitID, err := validators.UUIDParam(r, "visitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.CheckInVisit(r.Context(), visitID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

type completeVisitRequest struct {
	Notes string `json:"notes"`
}

// RepVisitComplete closes out a stop.
func RepVisitComplete(svc RepsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rep service unavailable"))
			return
		}
		visitID, err := validators.UUIDParam(r, "visitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload completeVisitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visit, err := svc.CompleteVisit(r.Context(), visitID, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

// RepCustomers pages the customers the rep serves.
func RepCustomers(svc RepsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rep service unavailable"))
			return
		}
		page, err := svc.ListCustomers(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
