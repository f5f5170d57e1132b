package upstream

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// ListRoutes fetches the acting rep's routes.
func (c *Client) ListRoutes(ctx context.Context, params pagination.Params) (types.Page[Route], error) {
	var page types.Page[Route]
	if err := c.get(ctx, "/rep/routes", params.Encode(nil), &page); err != nil {
		return types.Page[Route]{}, err
	}
	return page, nil
}

// ListVisits fetches the scheduled stops for one route.
func (c *Client) ListVisits(ctx context.Context, routeID uuid.UUID, params pagination.Params) (types.Page[Visit], error) {
	var page types.Page[Visit]
	if err := c.get(ctx, fmt.Sprintf("/rep/routes/%s/visits", routeID), params.Encode(nil), &page); err != nil {
		return types.Page[Visit]{}, err
	}
	return page, nil
}

// GetVisit fetches one scheduled stop.
func (c *Client) GetVisit(ctx context.Context, visitID uuid.UUID) (*Visit, error) {
	var visit Visit
	if err := c.get(ctx, fmt.Sprintf("/rep/visits/%s", visitID), nil, &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// CheckInVisit marks the rep as arrived at a stop.
func (c *Client) CheckInVisit(ctx context.Context, visitID uuid.UUID) (*Visit, error) {
	var visit Visit
	if err := c.send(ctx, "POST", fmt.Sprintf("/rep/visits/%s/check-in", visitID), nil, &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// CompleteVisit closes out a stop, optionally with notes.
func (c *Client) CompleteVisit(ctx context.Context, visitID uuid.UUID, notes string) (*Visit, error) {
	var visit Visit
	body := map[string]string{"notes": notes}
	if err := c.send(ctx, "POST", fmt.Sprintf("/rep/visits/%s/complete", visitID), body, &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// ListCustomers fetches the customers a rep serves.
func (c *Client) ListCustomers(ctx context.Context, params pagination.Params) (types.Page[Customer], error) {
	var page types.Page[Customer]
	if err := c.get(ctx, "/rep/customers", params.Encode(nil), &page); err != nil {
		return types.Page[Customer]{}, err
	}
	return page, nil
}
