package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorales/distromart-storefront/api/middleware"
	cartsvc "github.com/nmorales/distromart-storefront/internal/cart"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

type stubCartService struct {
	cartsvc.Service

	addItem     func(ctx context.Context, customerID, productID uuid.UUID, qty int) (*cartsvc.MutationResult, error)
	increment   func(ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.MutationResult, error)
	setQuantity func(ctx context.Context, customerID, productID uuid.UUID, raw string) (*cartsvc.MutationResult, error)
	refresh     func(ctx context.Context, customerID uuid.UUID) (*cartsvc.View, error)
	checkout    func(ctx context.Context, customerID uuid.UUID, input cartsvc.CheckoutInput) (*upstream.Order, error)
}

func (s *stubCartService) AddItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*cartsvc.MutationResult, error) {
	return s.addItem(ctx, customerID, productID, qty)
}

func (s *stubCartService) Increment(ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.MutationResult, error) {
	return s.increment(ctx, customerID, productID)
}

func (s *stubCartService) SetQuantity(ctx context.Context, customerID, productID uuid.UUID, raw string) (*cartsvc.MutationResult, error) {
	return s.setQuantity(ctx, customerID, productID, raw)
}

func (s *stubCartService) Refresh(ctx context.Context, customerID uuid.UUID) (*cartsvc.View, error) {
	return s.refresh(ctx, customerID)
}

func (s *stubCartService) Checkout(ctx context.Context, customerID uuid.UUID, input cartsvc.CheckoutInput) (*upstream.Order, error) {
	return s.checkout(ctx, customerID, input)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func asCustomer(req *http.Request, customerID uuid.UUID) *http.Request {
	ctx := middleware.WithRole(req.Context(), "customer")
	ctx = middleware.WithCustomerID(ctx, customerID.String())
	return req.WithContext(ctx)
}

func TestCartFetchRefreshesSnapshots(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	var refreshedFor uuid.UUID
	svc := &stubCartService{refresh: func(_ context.Context, id uuid.UUID) (*cartsvc.View, error) {
		refreshedFor = id
		return &cartsvc.View{Items: []cartsvc.LineView{}}, nil
	}}

	req := asCustomer(httptest.NewRequest(http.MethodGet, "/cart", nil), customerID)
	rec := httptest.NewRecorder()
	CartFetch(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, customerID, refreshedFor)
}

func TestCartFetchWithoutCustomerContext(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{refresh: func(_ context.Context, _ uuid.UUID) (*cartsvc.View, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	rec := httptest.NewRecorder()
	CartFetch(svc, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCartAddItemReturnsLimitNotice(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{addItem: func(_ context.Context, _, _ uuid.UUID, _ int) (*cartsvc.MutationResult, error) {
		return &cartsvc.MutationResult{
			Cart:    &cartsvc.View{Items: []cartsvc.LineView{{ProductID: productID, Quantity: 5}}},
			Blocked: true,
			Notice:  "Maximum allowed quantity is 5",
		}, nil
	}}

	body, _ := json.Marshal(map[string]any{"productId": productID, "quantity": 9})
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body)), customerID)
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data cartsvc.MutationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Blocked)
	assert.Equal(t, "Maximum allowed quantity is 5", envelope.Data.Notice)
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{addItem: func(_ context.Context, _, _ uuid.UUID, _ int) (*cartsvc.MutationResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	body := []byte(`{"productId":"` + uuid.NewString() + `","qty":2}`)
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartSetQuantityPassesRawInput(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	productID := uuid.New()
	var gotRaw string
	svc := &stubCartService{setQuantity: func(_ context.Context, _, _ uuid.UUID, raw string) (*cartsvc.MutationResult, error) {
		gotRaw = raw
		return &cartsvc.MutationResult{Cart: &cartsvc.View{}}, nil
	}}

	r := chi.NewRouter()
	r.Put("/cart/items/{productId}", CartSetQuantity(svc, testLogger()))

	body := []byte(`{"quantity":"2.9"}`)
	req := asCustomer(httptest.NewRequest(http.MethodPut, "/cart/items/"+productID.String(), bytes.NewReader(body)), customerID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.9", gotRaw)
}

func TestCartIncrementNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{increment: func(_ context.Context, _, _ uuid.UUID) (*cartsvc.MutationResult, error) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}}

	r := chi.NewRouter()
	r.Post("/cart/items/{productId}/increment", CartIncrement(svc, testLogger()))

	req := asCustomer(httptest.NewRequest(http.MethodPost, "/cart/items/"+uuid.NewString()+"/increment", nil), uuid.New())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "cart line not found", envelope.Error.Message)
}

func TestCartCheckoutCreated(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	svc := &stubCartService{checkout: func(_ context.Context, id uuid.UUID, input cartsvc.CheckoutInput) (*upstream.Order, error) {
		assert.Equal(t, customerID, id)
		assert.Equal(t, "12 Dock Rd", input.DeliveryAddress)
		return &upstream.Order{ID: uuid.New(), CustomerID: id, Status: "pending"}, nil
	}}

	body := []byte(`{"deliveryAddress":"12 Dock Rd"}`)
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/cart/checkout", bytes.NewReader(body)), customerID)
	rec := httptest.NewRecorder()
	CartCheckout(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
