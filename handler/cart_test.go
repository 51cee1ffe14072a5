package handler

import (
	"Storefront/service"
	"Storefront/types"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartService struct {
	items   map[int64]int
	userID  int64
	added   []int
	stock   int
	removed []int64
}

func (m *mockCartService) View(_ context.Context, userID int64) (*types.CartView, error) {
	m.userID = userID
	view := &types.CartView{TotalAmount: decimal.Zero}
	for id, qty := range m.items {
		view.Items = append(view.Items, types.CartLine{ID: id, Quantity: qty, Price: decimal.NewFromInt(2)})
	}
	view.Count = len(view.Items)
	return view, nil
}

func (m *mockCartService) Add(_ context.Context, userID, productID int64, quantity int) (int64, error) {
	m.userID = userID
	if productID == 404 {
		return 0, service.ErrProductNotFound
	}
	if quantity <= 0 {
		return 0, &service.QuantityError{Msg: "quantity must be greater than 0"}
	}
	if quantity > m.stock {
		return 0, &service.QuantityError{Msg: "only 1 left in stock"}
	}
	m.added = append(m.added, quantity)
	m.items[productID] += quantity
	return int64(len(m.items)), nil
}

func (m *mockCartService) UpdateQuantity(_ context.Context, userID, itemID int64, quantity int) error {
	if _, ok := m.items[itemID]; !ok {
		return service.ErrCartItemNotFound
	}
	m.items[itemID] = quantity
	return nil
}

func (m *mockCartService) Remove(_ context.Context, userID, itemID int64) error {
	if _, ok := m.items[itemID]; !ok {
		return service.ErrCartItemNotFound
	}
	delete(m.items, itemID)
	m.removed = append(m.removed, itemID)
	return nil
}

func (m *mockCartService) Count(_ context.Context, userID int64) (int64, error) {
	return int64(len(m.items)), nil
}

func TestCartHandler(t *testing.T) {
	conf := testConfig()
	one := 1
	five := 5

	testCases := []struct {
		name           string
		method, path   string
		auth           bool
		body           any
		expectedStatus int
		check          func(t *testing.T, m *mockCartService, env envelope)
	}{
		{
			name:           "unauthenticated",
			method:         http.MethodGet,
			path:           "/api/v1/cart",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "view",
			method:         http.MethodGet,
			path:           "/api/v1/cart",
			auth:           true,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, m *mockCartService, env envelope) {
				var view types.CartView
				require.NoError(t, json.Unmarshal(env.Data, &view))
				assert.Equal(t, 1, view.Count)
				assert.Equal(t, int64(42), m.userID)
			},
		},
		{
			name:           "add defaults quantity to one",
			method:         http.MethodPost,
			path:           "/api/v1/cart/items",
			auth:           true,
			body:           map[string]any{"product_id": 3},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, m *mockCartService, env envelope) {
				assert.Equal(t, []int{1}, m.added)
				assert.JSONEq(t, `{"count":2}`, string(env.Data))
			},
		},
		{
			name:           "add over stock",
			method:         http.MethodPost,
			path:           "/api/v1/cart/items",
			auth:           true,
			body:           types.AddCartItemRequest{ProductID: 3, Quantity: &five},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, m *mockCartService, env envelope) {
				assert.Equal(t, "only 1 left in stock", env.Msg)
			},
		},
		{
			name:           "add huge quantity",
			method:         http.MethodPost,
			path:           "/api/v1/cart/items",
			auth:           true,
			body:           map[string]any{"product_id": 3, "quantity": math.MaxInt64},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, m *mockCartService, env envelope) {
				assert.Equal(t, "quantity must be at most 999", env.Errors["quantity"])
				assert.Empty(t, m.added)
			},
		},
		{
			name:           "add zero quantity",
			method:         http.MethodPost,
			path:           "/api/v1/cart/items",
			auth:           true,
			body:           map[string]any{"product_id": 3, "quantity": 0},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "add unknown product",
			method:         http.MethodPost,
			path:           "/api/v1/cart/items",
			auth:           true,
			body:           types.AddCartItemRequest{ProductID: 404, Quantity: &one},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "add without product",
			method:         http.MethodPost,
			path:           "/api/v1/cart/items",
			auth:           true,
			body:           map[string]any{"quantity": 1},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, m *mockCartService, env envelope) {
				assert.Contains(t, env.Errors, "product_id")
			},
		},
		{
			name:           "remove foreign line",
			method:         http.MethodDelete,
			path:           "/api/v1/cart/items/99",
			auth:           true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "remove",
			method:         http.MethodDelete,
			path:           "/api/v1/cart/items/1",
			auth:           true,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, m *mockCartService, env envelope) {
				assert.Equal(t, []int64{1}, m.removed)
			},
		},
		{
			name:           "bad id",
			method:         http.MethodPut,
			path:           "/api/v1/cart/items/abc",
			auth:           true,
			body:           types.UpdateCartItemRequest{Quantity: 2},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &mockCartService{items: map[int64]int{1: 2}, stock: 1}
			r := gin.New()
			(&Cart{Config: conf, CartService: m}).RegisterRouter(r.Group("/api"))

			auth := ""
			if tc.auth {
				auth = customer(t, conf, 42)
			}
			rec, env := do(t, r, tc.method, tc.path, auth, tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.check != nil {
				tc.check(t, m, env)
			}
		})
	}
}
