package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorales/distromart-storefront/api/middleware"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	"github.com/nmorales/distromart-storefront/pkg/pagination"
	"github.com/nmorales/distromart-storefront/pkg/types"
)

type stubOrdersService struct {
	listOrders        func(ctx context.Context, role string, filter upstream.OrderFilter, params pagination.Params) (types.Page[upstream.Order], error)
	getOrder          func(ctx context.Context, role string, id uuid.UUID) (*upstream.Order, error)
	cancelOrder       func(ctx context.Context, id uuid.UUID) (*upstream.Order, error)
	updateOrderStatus func(ctx context.Context, id uuid.UUID, status string) (*upstream.Order, error)
	rejectOrder       func(ctx context.Context, id uuid.UUID, reason string) (*upstream.Order, error)
}

func (s *stubOrdersService) ListOrders(ctx context.Context, role string, filter upstream.OrderFilter, params pagination.Params) (types.Page[upstream.Order], error) {
	return s.listOrders(ctx, role, filter, params)
}

func (s *stubOrdersService) GetOrder(ctx context.Context, role string, id uuid.UUID) (*upstream.Order, error) {
	return s.getOrder(ctx, role, id)
}

func (s *stubOrdersService) CancelOrder(ctx context.Context, id uuid.UUID) (*upstream.Order, error) {
	return s.cancelOrder(ctx, id)
}

func (s *stubOrdersService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*upstream.Order, error) {
	return s.updateOrderStatus(ctx, id, status)
}

func (s *stubOrdersService) RejectOrder(ctx context.Context, id uuid.UUID, reason string) (*upstream.Order, error) {
	return s.rejectOrder(ctx, id, reason)
}

func asRole(req *http.Request, role string) *http.Request {
	return req.WithContext(middleware.WithRole(req.Context(), role))
}

func TestOrderListForwardsAdminFilter(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	var gotRole string
	var gotFilter upstream.OrderFilter
	svc := &stubOrdersService{listOrders: func(_ context.Context, role string, filter upstream.OrderFilter, params pagination.Params) (types.Page[upstream.Order], error) {
		gotRole = role
		gotFilter = filter
		assert.Equal(t, 2, params.Page)
		return types.Page[upstream.Order]{Items: []upstream.Order{}, Page: 2, PageSize: 20, TotalCount: 0, TotalPages: 0}, nil
	}}

	target := "/orders?status=pending&customerId=" + customerID.String() + "&page=2"
	req := asRole(httptest.NewRequest(http.MethodGet, target, nil), "admin")
	rec := httptest.NewRecorder()
	OrderList(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", gotRole)
	assert.Equal(t, "pending", gotFilter.Status)
	require.NotNil(t, gotFilter.CustomerID)
	assert.Equal(t, customerID, *gotFilter.CustomerID)
}

func TestOrderListRejectsMalformedCustomerFilter(t *testing.T) {
	t.Parallel()

	svc := &stubOrdersService{listOrders: func(_ context.Context, _ string, _ upstream.OrderFilter, _ pagination.Params) (types.Page[upstream.Order], error) {
		t.Fatal("service must not be called")
		return types.Page[upstream.Order]{}, nil
	}}

	req := asRole(httptest.NewRequest(http.MethodGet, "/orders?customerId=not-a-uuid", nil), "admin")
	rec := httptest.NewRecorder()
	OrderList(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOrderStatusAcceptsBareJSONString(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	var gotStatus string
	svc := &stubOrdersService{updateOrderStatus: func(_ context.Context, id uuid.UUID, status string) (*upstream.Order, error) {
		assert.Equal(t, orderID, id)
		gotStatus = status
		return &upstream.Order{ID: id, Status: status}, nil
	}}

	r := chi.NewRouter()
	r.Put("/orders/{orderId}/status", AdminOrderStatus(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPut, "/orders/"+orderID.String()+"/status", bytes.NewReader([]byte(`"confirmed"`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confirmed", gotStatus)

	var envelope struct {
		Data upstream.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "confirmed", envelope.Data.Status)
}

func TestAdminOrderStatusEmptyBody(t *testing.T) {
	t.Parallel()

	svc := &stubOrdersService{updateOrderStatus: func(_ context.Context, _ uuid.UUID, _ string) (*upstream.Order, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	r := chi.NewRouter()
	r.Put("/orders/{orderId}/status", AdminOrderStatus(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPut, "/orders/"+uuid.NewString()+"/status", bytes.NewReader([]byte(`""`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOrderRejectForwardsReason(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	var gotReason string
	svc := &stubOrdersService{rejectOrder: func(_ context.Context, id uuid.UUID, reason string) (*upstream.Order, error) {
		gotReason = reason
		return &upstream.Order{ID: id, Status: "rejected"}, nil
	}}

	r := chi.NewRouter()
	r.Put("/orders/{orderId}/reject", AdminOrderReject(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPut, "/orders/"+orderID.String()+"/reject", bytes.NewReader([]byte(`"credit hold"`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "credit hold", gotReason)
}
