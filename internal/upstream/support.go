package upstream

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// ListTickets fetches one page of support complaints for the acting role.
func (c *Client) ListTickets(ctx context.Context, role string, params pagination.Params) (types.Page[Ticket], error) {
	var page types.Page[Ticket]
	if err := c.get(ctx, "/"+role+"/complaints", params.Encode(nil), &page); err != nil {
		return types.Page[Ticket]{}, err
	}
	return page, nil
}

// CreateTicket opens a complaint on behalf of a customer.
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	var ticket Ticket
	if err := c.send(ctx, "POST", "/customer/complaints", req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicketStatus transitions a complaint (admin). The platform expects
// the new status as a bare JSON string body.
func (c *Client) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) (*Ticket, error) {
	var ticket Ticket
	if err := c.sendRaw(ctx, "PUT", fmt.Sprintf("/admin/complaints/%s/status", id), status, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
