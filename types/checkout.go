package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest 二选一: 立即购买 (product_id + quantity) 或 购物车行 cart_item_ids
type CheckoutRequest struct {
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity" binding:"lte=999"`
	CartItemIDs []int64 `json:"cart_item_ids"`
}

func (r *CheckoutRequest) BuyNow() bool {
	return r.ProductID > 0
}

type ConfirmCheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=500"`
	Phone           string `json:"phone" binding:"required,phone"`
	PaymentMethod   string `json:"payment_method" binding:"required,eq=COD"`
	// Quantity 仅对立即购买生效, <= 0 忽略
	Quantity int `json:"quantity" binding:"lte=999"`
}

type CheckoutItem struct {
	CartItemID    int64           `json:"cart_item_id,omitempty"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ImageURL      string          `json:"image_url"`
	Color         string          `json:"color"`
	Size          string          `json:"size"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

func (i *CheckoutItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CheckoutSnapshot 服务端保存的待确认结算单, 价格和商品以此为准
type CheckoutSnapshot struct {
	Token     string         `json:"token"`
	UserID    int64          `json:"user_id"`
	BuyNow    bool           `json:"buy_now"`
	Items     []CheckoutItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	// OrderID 确认成功后写入, 重复确认直接返回该订单
	OrderID int64 `json:"order_id,omitempty"`
}

func (s *CheckoutSnapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].LineTotal())
	}
	return total
}

func (s *CheckoutSnapshot) CartItemIDs() []int64 {
	ids := make([]int64, 0, len(s.Items))
	for _, it := range s.Items {
		if it.CartItemID > 0 {
			ids = append(ids, it.CartItemID)
		}
	}
	return ids
}

type CheckoutResponse struct {
	Token           string          `json:"token"`
	BuyNow          bool            `json:"buy_now"`
	Items           []CheckoutItem  `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	Phone           string          `json:"phone"`
	PaymentMethods  []string        `json:"payment_methods"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

type ConfirmCheckoutResponse struct {
	OrderID   int64  `json:"order_id"`
	OrderCode string `json:"order_code"`
	// Replayed 同一结算单重复提交
	Replayed bool `json:"replayed"`
}
