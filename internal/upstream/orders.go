package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// OrderFilter narrows order collection queries.
type OrderFilter struct {
	Status     string
	CustomerID *uuid.UUID
}

func (f OrderFilter) encode(params pagination.Params) url.Values {
	q := params.Encode(nil)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.CustomerID != nil {
		q.Set("customerId", f.CustomerID.String())
	}
	return q
}

// CreateOrder places an order. Both the customer cart checkout and the rep
// draft submission funnel into this call.
func (c *Client) CreateOrder(ctx context.Context, role string, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.send(ctx, "POST", "/"+role+"/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches one page of orders for the acting role.
func (c *Client) ListOrders(ctx context.Context, role string, filter OrderFilter, params pagination.Params) (types.Page[Order], error) {
	var page types.Page[Order]
	if err := c.get(ctx, "/"+role+"/orders", filter.encode(params), &page); err != nil {
		return types.Page[Order]{}, err
	}
	return page, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, role string, id uuid.UUID) (*Order, error) {
	var order Order
	if err := c.get(ctx, fmt.Sprintf("/%s/orders/%s", role, id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus transitions an order (admin). The platform expects the
// new status as a bare JSON string body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	var order Order
	if err := c.sendRaw(ctx, "PUT", fmt.Sprintf("/admin/orders/%s/status", id), status, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// RejectOrder declines an order with a reason (admin). Like the status
// transition, the reason travels as a bare JSON string body.
func (c *Client) RejectOrder(ctx context.Context, id uuid.UUID, reason string) (*Order, error) {
	var order Order
	if err := c.sendRaw(ctx, "PUT", fmt.Sprintf("/admin/orders/%s/reject", id), reason, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels the customer's own order.
func (c *Client) CancelOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	if err := c.send(ctx, "POST", fmt.Sprintf("/customer/orders/%s/cancel", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
