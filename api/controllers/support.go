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

// SupportService is the slice of the platform client the complaint
// controllers consume.
type SupportService interface {
	ListTickets(ctx context.Context, role string, params pagination.Params) (types.Page[upstream.Ticket], error)
	CreateTicket(ctx context.Context, req upstream.CreateTicketRequest) (*upstream.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) (*upstream.Ticket, error)
}

// TicketList pages complaints for the acting role.
func TicketList(svc SupportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}
		page, err := svc.ListTickets(r.Context(), middleware.RoleFromContext(r.Context()), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

type createTicketRequest struct {
	OrderID *uuid.UUID `json:"orderId"`
	Subject string     `json:"subject" validate:"required"`
	Body    string     `json:"body" validate:"required"`
}

// TicketCreate opens a complaint for the acting customer.
func TicketCreate(svc SupportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}
		customerID, err := customerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTicketRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.CreateTicket(r.Context(), upstream.CreateTicketRequest{
			CustomerID: customerID,
			OrderID:    payload.OrderID,
			Subject:    payload.Subject,
			Body:       payload.Body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}

// AdminTicketStatus transitions a complaint. The body is a bare JSON string
// with the new status.
func AdminTicketStatus(svc SupportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}
		ticketID, err := validators.UUIDParam(r, "ticketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := validators.DecodeRawString(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.UpdateTicketStatus(r.Context(), ticketID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}
