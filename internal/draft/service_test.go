package draft

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/redis"
)

type stubKV struct {
	values  map[string]string
	lastTTL time.Duration
}

func newStubKV() *stubKV {
	return &stubKV{values: map[string]string{}}
}

func (s *stubKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	s.values[key] = value.(string)
	s.lastTTL = ttl
	return nil
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *stubKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubKV) DraftKey(repID, sessionID string) string {
	return "dm:draft:" + repID + ":" + sessionID
}

type stubProducts struct {
	byID map[uuid.UUID]*upstream.Product
}

func (s *stubProducts) GetProduct(_ context.Context, id uuid.UUID) (*upstream.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubOrders struct {
	placed *upstream.CreateOrderRequest
	err    error
}

func (s *stubOrders) CreateOrder(_ context.Context, _ string, req upstream.CreateOrderRequest) (*upstream.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.placed = &req
	return &upstream.Order{ID: uuid.New(), CustomerID: req.CustomerID, Status: "pending"}, nil
}

func intPtr(n int) *int { return &n }

func newTestService(t *testing.T, kv *stubKV, products *stubProducts, orders *stubOrders) Service {
	t.Helper()
	if products == nil {
		products = &stubProducts{}
	}
	if orders == nil {
		orders = &stubOrders{}
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(kv, products, orders, 12*time.Hour, logg)
	require.NoError(t, err)
	return svc
}

func testProduct(id uuid.UUID, stock *int) *upstream.Product {
	return &upstream.Product{
		ID:            id,
		Name:          "Cola 330ml",
		SKU:           "COLA-330",
		Unit:          "case",
		Price:         decimal.RequireFromString("18.50"),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestGetMissingDraftIsEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubKV(), nil, nil)

	draft, err := svc.Get(context.Background(), "rep-1", "sess-1")
	require.NoError(t, err)
	assert.Nil(t, draft.CustomerID)
	assert.Empty(t, draft.Items)
}

func TestGetCorruptDraftStartsFresh(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.values[kv.DraftKey("rep-1", "sess-1")] = "{not json"
	svc := newTestService(t, kv, nil, nil)

	draft, err := svc.Get(context.Background(), "rep-1", "sess-1")
	require.NoError(t, err)
	assert.Empty(t, draft.Items)
}

func TestAddItemPersistsWithTTL(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	kv := newStubKV()
	svc := newTestService(t, kv, &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: testProduct(productID, intPtr(10)),
	}}, nil)

	result, err := svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 2)
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	require.Len(t, result.Draft.Items, 1)
	assert.Equal(t, 2, result.Draft.Items[0].Quantity)
	assert.Equal(t, 12*time.Hour, kv.lastTTL)

	// The draft round-trips through the store.
	reloaded, err := svc.Get(context.Background(), "rep-1", "sess-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Cola 330ml", reloaded.Items[0].ProductName)
}

func TestAddItemIgnoresStockCap(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	product := testProduct(productID, intPtr(5))
	product.AllowBackorder = false
	svc := newTestService(t, newStubKV(), &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: product,
	}}, nil)

	// Drafts record what the customer asked for; the platform decides at
	// submit what it can fulfill.
	result, err := svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 10)
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	assert.Empty(t, result.Notice)
	require.Len(t, result.Draft.Items, 1)
	assert.Equal(t, 10, result.Draft.Items[0].Quantity)
}

func TestSetQuantityIgnoresStockCap(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	kv := newStubKV()
	svc := newTestService(t, kv, &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: testProduct(productID, intPtr(6)),
	}}, nil)

	_, err := svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 1)
	require.NoError(t, err)

	result, err := svc.SetQuantity(context.Background(), "rep-1", "sess-1", productID, "50")
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	assert.Equal(t, 50, result.Draft.Items[0].Quantity)
}

func TestSetQuantityCoercesSubOneToOne(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	kv := newStubKV()
	svc := newTestService(t, kv, &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: testProduct(productID, nil),
	}}, nil)

	_, err := svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 3)
	require.NoError(t, err)

	// Direct entry of zero is junk input, not a removal gesture.
	result, err := svc.SetQuantity(context.Background(), "rep-1", "sess-1", productID, "0")
	require.NoError(t, err)
	require.Len(t, result.Draft.Items, 1)
	assert.Equal(t, 1, result.Draft.Items[0].Quantity)
}

func TestSubmitRequiresCustomerAndItems(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	kv := newStubKV()
	svc := newTestService(t, kv, &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: testProduct(productID, nil),
	}}, nil)

	_, err := svc.Submit(context.Background(), "rep-1", "sess-1", SubmitInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 1)
	require.NoError(t, err)

	// Items but still no customer.
	_, err = svc.Submit(context.Background(), "rep-1", "sess-1", SubmitInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitPlacesOrderAndDiscardsDraft(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	customerID := uuid.New()
	kv := newStubKV()
	orders := &stubOrders{}
	svc := newTestService(t, kv, &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: testProduct(productID, nil),
	}}, orders)

	_, err := svc.SetCustomer(context.Background(), "rep-1", "sess-1", customerID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 2)
	require.NoError(t, err)

	order, err := svc.Submit(context.Background(), "rep-1", "sess-1", SubmitInput{DeliveryAddress: "12 Dock Rd"})
	require.NoError(t, err)
	assert.Equal(t, customerID, order.CustomerID)

	require.NotNil(t, orders.placed)
	assert.Equal(t, customerID, orders.placed.CustomerID)
	require.Len(t, orders.placed.Items, 1)
	assert.Equal(t, 2, orders.placed.Items[0].Quantity)
	assert.Equal(t, "COLA-330", orders.placed.Items[0].SKU)

	reloaded, err := svc.Get(context.Background(), "rep-1", "sess-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
	assert.Nil(t, reloaded.CustomerID)
}

func TestSubmitKeepsDraftOnFailure(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	customerID := uuid.New()
	kv := newStubKV()
	orders := &stubOrders{err: pkgerrors.New(pkgerrors.CodeDependency, "order service down")}
	svc := newTestService(t, kv, &stubProducts{byID: map[uuid.UUID]*upstream.Product{
		productID: testProduct(productID, nil),
	}}, orders)

	_, err := svc.SetCustomer(context.Background(), "rep-1", "sess-1", customerID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "rep-1", "sess-1", productID, 1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "rep-1", "sess-1", SubmitInput{})
	require.Error(t, err)

	reloaded, err := svc.Get(context.Background(), "rep-1", "sess-1")
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
}
