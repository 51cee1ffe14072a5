package handler

import (
	"Storefront/models"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockOrderService struct {
	actorID int64
	to      models.OrderStatus
	status  *models.OrderStatus
	err     error
}

func (m *mockOrderService) ListForUser(context.Context, int64) ([]*types.Order, error) {
	return []*types.Order{}, nil
}

func (m *mockOrderService) GetForUser(_ context.Context, userID, orderID int64) (*types.OrderDetail, error) {
	if orderID != 1 {
		return nil, service.ErrOrderNotFound
	}
	return &types.OrderDetail{Order: types.Order{ID: orderID, UserID: userID}}, nil
}

func (m *mockOrderService) Cancel(_ context.Context, userID, orderID int64) (*types.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &types.Order{ID: orderID, Status: models.OrderStatusCancelled}, nil
}

func (m *mockOrderService) ListAll(_ context.Context, status *models.OrderStatus, page, pageSize int) (*types.OrderListResponse, error) {
	m.status = status
	return &types.OrderListResponse{Items: []*types.Order{}}, nil
}

func (m *mockOrderService) Get(_ context.Context, orderID int64) (*types.OrderDetail, error) {
	return &types.OrderDetail{Order: types.Order{ID: orderID}}, nil
}

func (m *mockOrderService) UpdateStatus(_ context.Context, actorID, orderID int64, to models.OrderStatus) (*types.Order, error) {
	m.actorID = actorID
	m.to = to
	if m.err != nil {
		return nil, m.err
	}
	return &types.Order{ID: orderID, Status: to}, nil
}

func (m *mockOrderService) StatusOptions() []types.StatusOption {
	return []types.StatusOption{{Value: 0, Name: "Pending", Label: "Pending"}}
}

func TestAdminOrderRequiresAdmin(t *testing.T) {
	conf := testConfig()
	m := &mockOrderService{}
	r := gin.New()
	(&AdminOrder{Config: conf, OrderService: m}).RegisterRouter(r.Group("/api"))

	rec, _ := do(t, r, http.MethodGet, "/api/v1/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/v1/admin/orders", customer(t, conf, 3), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/v1/admin/orders?status=2", bearer(t, conf, 1, models.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, m.status) {
		assert.Equal(t, models.OrderStatusShipped, *m.status)
	}

	rec, _ = do(t, r, http.MethodGet, "/api/v1/admin/orders?status=9", bearer(t, conf, 1, models.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOrderUpdateStatus(t *testing.T) {
	conf := testConfig()
	admin := bearer(t, conf, 1, models.RoleAdmin)
	three := 3
	seven := 7

	testCases := []struct {
		name           string
		err            error
		body           any
		expectedStatus int
	}{
		{name: "delivered", body: types.UpdateOrderStatusRequest{Status: &three}, expectedStatus: http.StatusOK},
		{name: "missing status", body: map[string]any{}, expectedStatus: http.StatusUnprocessableEntity},
		{name: "unknown status", body: types.UpdateOrderStatusRequest{Status: &seven}, expectedStatus: http.StatusBadRequest},
		{name: "stock short", err: &service.StockError{ProductName: "Tee"}, body: types.UpdateOrderStatusRequest{Status: &three}, expectedStatus: http.StatusConflict},
		{name: "lost race", err: service.ErrConcurrencyConflict, body: types.UpdateOrderStatusRequest{Status: &three}, expectedStatus: http.StatusConflict},
		{name: "missing order", err: service.ErrOrderNotFound, body: types.UpdateOrderStatusRequest{Status: &three}, expectedStatus: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &mockOrderService{err: tc.err}
			r := gin.New()
			(&AdminOrder{Config: conf, OrderService: m}).RegisterRouter(r.Group("/api"))

			rec, _ := do(t, r, http.MethodPost, "/api/v1/admin/orders/5/status", admin, tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, int64(1), m.actorID)
				assert.Equal(t, models.OrderStatusDelivered, m.to)
			}
		})
	}
}

func TestCustomerOrders(t *testing.T) {
	conf := testConfig()
	m := &mockOrderService{}
	r := gin.New()
	(&Order{Config: conf, OrderService: m}).RegisterRouter(r.Group("/api"))
	auth := customer(t, conf, 3)

	rec, _ := do(t, r, http.MethodGet, "/api/v1/orders/1", auth, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, r, http.MethodGet, "/api/v1/orders/2", auth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	m.err = service.ErrCancelNotAllowed
	rec, env := do(t, r, http.MethodPost, "/api/v1/orders/1/cancel", auth, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.ErrCancelNotAllowed.Error(), env.Msg)
}

func TestBizError(t *testing.T) {
	testCases := []struct {
		err  error
		code int
	}{
		{service.ErrCheckoutExpired, http.StatusGone},
		{fmt.Errorf("%w: no email", service.ErrInvalidCredentials), http.StatusUnauthorized},
		{service.ErrVariantNotFound, http.StatusNotFound},
		{service.ErrEmailTaken, http.StatusConflict},
		{service.ErrProductInUse, http.StatusConflict},
		{&service.QuantityError{Msg: "x"}, http.StatusBadRequest},
		{service.ErrCategoryCycle, http.StatusBadRequest},
		{fmt.Errorf("%w: too big", service.ErrInvalidImage), http.StatusBadRequest},
		{response.Forbidden("nope"), http.StatusForbidden},
	}
	for _, tc := range testCases {
		var be *response.BizError
		if assert.True(t, errors.As(bizError(tc.err), &be), tc.err.Error()) {
			assert.Equal(t, tc.code, be.Code, tc.err.Error())
		}
	}

	unknown := errors.New("db down")
	assert.Same(t, unknown, bizError(unknown))
}

func TestCustomerRoutesRequireCustomerRole(t *testing.T) {
	conf := testConfig()
	r := gin.New()
	api := r.Group("/api")
	(&Cart{Config: conf, CartService: &mockCartService{items: map[int64]int{}}}).RegisterRouter(api)
	(&Checkout{Config: conf, CheckoutService: &mockCheckoutService{}}).routes(api)
	(&Order{Config: conf, OrderService: &mockOrderService{}}).RegisterRouter(api)

	adminOnly := bearer(t, conf, 1, models.RoleAdmin)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart/items"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodPost, "/api/v1/checkout/tok/confirm"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodPost, "/api/v1/orders/1/cancel"},
	} {
		rec, _ := do(t, r, route.method, route.path, adminOnly, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, route.path)
	}

	// 同时拥有两个角色可以购物
	both := bearer(t, conf, 1, models.RoleAdmin, models.RoleCustomer)
	rec, _ := do(t, r, http.MethodGet, "/api/v1/cart", both, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, r, http.MethodGet, "/api/v1/orders", both, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
