package upstream

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// ListProducts fetches one catalog page. Filtering and sorting of the fetched
// page happen client-side in internal/catalog; only pagination goes upstream.
func (c *Client) ListProducts(ctx context.Context, params pagination.Params) (types.Page[Product], error) {
	var page types.Page[Product]
	if err := c.get(ctx, "/customer/products", params.Encode(nil), &page); err != nil {
		return types.Page[Product]{}, err
	}
	return page, nil
}

// GetProduct fetches the authoritative product record. The cart snapshot
// refresh calls this once per line.
func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("/customer/products/%s", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalog record (admin).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.send(ctx, "POST", "/admin/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a catalog record (admin).
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*Product, error) {
	var product Product
	if err := c.send(ctx, "PUT", fmt.Sprintf("/admin/products/%s", id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalog record (admin).
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.send(ctx, "DELETE", fmt.Sprintf("/admin/products/%s", id), nil, nil)
}
