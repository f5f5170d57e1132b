package upstream

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

// RecordPayment records a customer payment (admin).
func (c *Client) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, error) {
	var payment Payment
	if err := c.send(ctx, "POST", "/admin/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// VerifyPayment marks a recorded payment as verified (admin).
func (c *Client) VerifyPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var payment Payment
	if err := c.send(ctx, "POST", fmt.Sprintf("/admin/payments/%s/verify", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments fetches one page of recorded payments (admin).
func (c *Client) ListPayments(ctx context.Context, params pagination.Params) (types.Page[Payment], error) {
	var page types.Page[Payment]
	if err := c.get(ctx, "/admin/payments", params.Encode(nil), &page); err != nil {
		return types.Page[Payment]{}, err
	}
	return page, nil
}

// CustomerLedger fetches one page of a customer's account statement.
func (c *Client) CustomerLedger(ctx context.Context, role string, customerID uuid.UUID, params pagination.Params) (types.Page[LedgerEntry], error) {
	var page types.Page[LedgerEntry]
	path := fmt.Sprintf("/%s/customers/%s/ledger", role, customerID)
	if err := c.get(ctx, path, params.Encode(nil), &page); err != nil {
		return types.Page[LedgerEntry]{}, err
	}
	return page, nil
}
