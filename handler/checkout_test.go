package handler

import (
	"Storefront/models"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"
	stdctx "context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCheckoutService struct {
	confirmErr error
	replayed   bool
	lastReq    *types.ConfirmCheckoutRequest
	lastToken  string
}

func (m *mockCheckoutService) Start(_ stdctx.Context, userID int64, req *types.CheckoutRequest) (*types.CheckoutResponse, error) {
	if !req.BuyNow() && len(req.CartItemIDs) == 0 {
		return nil, service.ErrEmptyCheckout
	}
	return &types.CheckoutResponse{Token: "tok", BuyNow: req.BuyNow(), PaymentMethods: []string{models.PaymentMethodCOD}}, nil
}

func (m *mockCheckoutService) Get(_ stdctx.Context, userID int64, token string) (*types.CheckoutResponse, error) {
	if token != "tok" {
		return nil, service.ErrCheckoutExpired
	}
	return &types.CheckoutResponse{Token: token}, nil
}

func (m *mockCheckoutService) Confirm(_ stdctx.Context, userID int64, token string, req *types.ConfirmCheckoutRequest) (*types.ConfirmCheckoutResponse, error) {
	m.lastReq = req
	m.lastToken = token
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}
	return &types.ConfirmCheckoutResponse{OrderID: 9, OrderCode: "abc", Replayed: m.replayed}, nil
}

// checkoutRouter 不挂限流, 测试里没有初始化 sentinel
func checkoutRouter(h *Checkout) *gin.Engine {
	r := gin.New()
	h.routes(r.Group("/api"))
	return r
}

func TestCheckoutConfirm(t *testing.T) {
	conf := testConfig()
	body := types.ConfirmCheckoutRequest{ShippingAddress: "1 Main St", Phone: "0901234567", PaymentMethod: "COD", Quantity: 2}

	testCases := []struct {
		name           string
		mock           *mockCheckoutService
		body           any
		expectedStatus int
		check          func(t *testing.T, m *mockCheckoutService, env envelope)
	}{
		{
			name:           "created",
			mock:           &mockCheckoutService{},
			body:           body,
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, m *mockCheckoutService, env envelope) {
				var resp types.ConfirmCheckoutResponse
				require.NoError(t, json.Unmarshal(env.Data, &resp))
				assert.Equal(t, int64(9), resp.OrderID)
				assert.Equal(t, "tok", m.lastToken)
				assert.Equal(t, 2, m.lastReq.Quantity)
			},
		},
		{
			name:           "replayed",
			mock:           &mockCheckoutService{replayed: true},
			body:           body,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "expired",
			mock:           &mockCheckoutService{confirmErr: service.ErrCheckoutExpired},
			expectedStatus: http.StatusGone,
		},
		{
			name: "validation",
			mock: &mockCheckoutService{confirmErr: response.NewValidationError(map[string]string{
				"phone": "invalid phone number",
			})},
			body:           types.ConfirmCheckoutRequest{},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, m *mockCheckoutService, env envelope) {
				assert.Equal(t, "invalid phone number", env.Errors["phone"])
			},
		},
		{
			name:           "stock",
			mock:           &mockCheckoutService{confirmErr: &service.StockError{ProductName: "Tee", Color: "Red", Size: "M", Requested: 3, Available: 1}},
			body:           body,
			expectedStatus: http.StatusConflict,
			check: func(t *testing.T, m *mockCheckoutService, env envelope) {
				assert.Contains(t, env.Msg, "only 1 left")
			},
		},
		{
			name:           "in progress",
			mock:           &mockCheckoutService{confirmErr: service.ErrCheckoutInProgress},
			body:           body,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "malformed body",
			mock:           &mockCheckoutService{},
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := checkoutRouter(&Checkout{Config: conf, CheckoutService: tc.mock})
			rec, env := do(t, r, http.MethodPost, "/api/v1/checkout/tok/confirm", customer(t, conf, 7), tc.body)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.check != nil {
				tc.check(t, tc.mock, env)
			}
		})
	}
}

func TestCheckoutStartAndGet(t *testing.T) {
	conf := testConfig()
	r := checkoutRouter(&Checkout{Config: conf, CheckoutService: &mockCheckoutService{}})
	auth := customer(t, conf, 7)

	rec, _ := do(t, r, http.MethodPost, "/api/v1/checkout", auth, types.CheckoutRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, r, http.MethodPost, "/api/v1/checkout", auth, types.CheckoutRequest{ProductID: 1, Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.CheckoutResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.BuyNow)
	assert.Equal(t, []string{"COD"}, resp.PaymentMethods)

	rec, _ = do(t, r, http.MethodGet, "/api/v1/checkout/other", auth, nil)
	assert.Equal(t, http.StatusGone, rec.Code)
}
