// Package draft holds the sales rep's in-progress order. A draft is scoped to
// one rep session, mirrors what the rep is assembling during a customer visit,
// and expires on its own; nothing upstream exists until Submit.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/quantity"
	"github.com/nmorales/distromart-storefront/pkg/redis"
)

type kvStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DraftKey(repID, sessionID string) string
}

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*upstream.Product, error)
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, role string, req upstream.CreateOrderRequest) (*upstream.Order, error)
}

// Draft is the rep's working order.
type Draft struct {
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Items      []Item     `json:"items"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Item is one product on the draft, snapshotted from the catalog at add time.
type Item struct {
	ProductID             uuid.UUID       `json:"productId"`
	ProductName           string          `json:"productName"`
	SKU                   string          `json:"sku"`
	Unit                  string          `json:"unit"`
	UnitPrice             decimal.Decimal `json:"unitPrice"`
	Quantity              int             `json:"quantity"`
	StockQuantity         *int            `json:"stockQuantity,omitempty"`
	AllowBackorder        bool            `json:"allowBackorder"`
	BackorderLimit        *int            `json:"backorderLimit,omitempty"`
	BackorderLeadTimeDays *int            `json:"backorderLeadTimeDays,omitempty"`
}

// MutationResult mirrors the cart's mutation response shape. Drafts carry no
// quantity cap, so Blocked and Notice stay zero; the shape is shared so both
// surfaces render the same way.
type MutationResult struct {
	Draft   *Draft `json:"draft"`
	Blocked bool   `json:"blocked"`
	Notice  string `json:"notice,omitempty"`
}

// SubmitInput is the rep-entered portion of an order.
type SubmitInput struct {
	DeliveryAddress string
	Notes           string
}

// Service exposes draft operations.
type Service interface {
	Get(ctx context.Context, repID, sessionID string) (*Draft, error)
	SetCustomer(ctx context.Context, repID, sessionID string, customerID uuid.UUID) (*Draft, error)
	AddItem(ctx context.Context, repID, sessionID string, productID uuid.UUID, qty int) (*MutationResult, error)
	SetQuantity(ctx context.Context, repID, sessionID string, productID uuid.UUID, raw string) (*MutationResult, error)
	RemoveItem(ctx context.Context, repID, sessionID string, productID uuid.UUID) (*Draft, error)
	Clear(ctx context.Context, repID, sessionID string) error
	Submit(ctx context.Context, repID, sessionID string, input SubmitInput) (*upstream.Order, error)
}

type service struct {
	kv       kvStore
	products productLoader
	orders   orderPlacer
	ttl      time.Duration
	logg     *logger.Logger
}

// NewService builds a draft service over the session store.
func NewService(kv kvStore, products productLoader, orders orderPlacer, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if kv == nil {
		return nil, fmt.Errorf("session store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{kv: kv, products: products, orders: orders, ttl: ttl, logg: logg}, nil
}

// Get loads the session's draft. A missing or unreadable value yields a fresh
// empty draft; a corrupt draft is a session to restart, not a 500.
func (s *service) Get(ctx context.Context, repID, sessionID string) (*Draft, error) {
	if repID == "" || sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rep and session ids are required")
	}
	raw, err := s.kv.Get(ctx, s.kv.DraftKey(repID, sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return emptyDraft(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order draft")
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		s.logg.Warn(ctx, "discarding unreadable order draft")
		return emptyDraft(), nil
	}
	if draft.Items == nil {
		draft.Items = []Item{}
	}
	return &draft, nil
}

// SetCustomer points the draft at a customer account.
func (s *service) SetCustomer(ctx context.Context, repID, sessionID string, customerID uuid.UUID) (*Draft, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	draft, err := s.Get(ctx, repID, sessionID)
	if err != nil {
		return nil, err
	}
	draft.CustomerID = &customerID
	if err := s.save(ctx, repID, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AddItem puts qty more units of a product on the draft. Stock and backorder
// caps do not apply here: the rep is writing down what the customer asked for,
// and the platform decides at submit what it can fulfill.
func (s *service) AddItem(ctx context.Context, repID, sessionID string, productID uuid.UUID, qty int) (*MutationResult, error) {
	if qty < 1 {
		qty = 1
	}
	draft, err := s.Get(ctx, repID, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	item := findItem(draft, productID)
	if item != nil {
		item.Quantity += qty
	} else {
		draft.Items = append(draft.Items, Item{
			ProductID:             product.ID,
			ProductName:           product.Name,
			SKU:                   product.SKU,
			Unit:                  product.Unit,
			UnitPrice:             product.Price,
			Quantity:              qty,
			StockQuantity:         product.StockQuantity,
			AllowBackorder:        product.AllowBackorder,
			BackorderLimit:        product.BackorderLimit,
			BackorderLeadTimeDays: product.BackorderLeadTimeDays,
		})
	}

	if err := s.save(ctx, repID, sessionID, draft); err != nil {
		return nil, err
	}
	return &MutationResult{Draft: draft}, nil
}

// SetQuantity applies a direct edit to a drafted item. Junk or sub-one input
// coerces to 1; no upper cap applies.
func (s *service) SetQuantity(ctx context.Context, repID, sessionID string, productID uuid.UUID, raw string) (*MutationResult, error) {
	draft, err := s.Get(ctx, repID, sessionID)
	if err != nil {
		return nil, err
	}
	item := findItem(draft, productID)
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft item not found")
	}

	item.Quantity = quantity.Normalize(raw)

	if err := s.save(ctx, repID, sessionID, draft); err != nil {
		return nil, err
	}
	return &MutationResult{Draft: draft}, nil
}

// RemoveItem drops a product from the draft.
func (s *service) RemoveItem(ctx context.Context, repID, sessionID string, productID uuid.UUID) (*Draft, error) {
	draft, err := s.Get(ctx, repID, sessionID)
	if err != nil {
		return nil, err
	}
	removeItem(draft, productID)
	if err := s.save(ctx, repID, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Clear discards the draft entirely.
func (s *service) Clear(ctx context.Context, repID, sessionID string) error {
	if repID == "" || sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rep and session ids are required")
	}
	if err := s.kv.Del(ctx, s.kv.DraftKey(repID, sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard order draft")
	}
	return nil
}

// Submit turns the draft into an order on behalf of its customer and discards
// it on success.
func (s *service) Submit(ctx context.Context, repID, sessionID string, input SubmitInput) (*upstream.Order, error) {
	draft, err := s.Get(ctx, repID, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.CustomerID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft has no customer")
	}
	if len(draft.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft is empty")
	}

	items := make([]upstream.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, upstream.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	order, err := s.orders.CreateOrder(ctx, "rep", upstream.CreateOrderRequest{
		CustomerID:      *draft.CustomerID,
		Items:           items,
		DeliveryAddress: input.DeliveryAddress,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Clear(ctx, repID, sessionID); err != nil {
		s.logg.Error(ctx, "discard draft after submit", err)
	}
	return order, nil
}

func (s *service) save(ctx context.Context, repID, sessionID string, draft *Draft) error {
	draft.UpdatedAt = time.Now().UTC()
	encoded, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order draft")
	}
	if err := s.kv.Set(ctx, s.kv.DraftKey(repID, sessionID), string(encoded), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order draft")
	}
	return nil
}

func emptyDraft() *Draft {
	return &Draft{Items: []Item{}}
}

func findItem(draft *Draft, productID uuid.UUID) *Item {
	for i := range draft.Items {
		if draft.Items[i].ProductID == productID {
			return &draft.Items[i]
		}
	}
	return nil
}

func removeItem(draft *Draft, productID uuid.UUID) {
	kept := draft.Items[:0]
	for _, item := range draft.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	draft.Items = kept
}
