package types

import (
	"Storefront/models"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              int64              `json:"id"`
	Code            string             `json:"code"`
	UserID          int64              `json:"user_id"`
	Email           string             `json:"email,omitempty"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Status          models.OrderStatus `json:"status"`
	ShippingAddress string             `json:"shipping_address"`
	Phone           string             `json:"phone"`
	PaymentMethod   string             `json:"payment_method"`
	OrderDate       time.Time          `json:"order_date"`
	Version         int64              `json:"version"`
}

type OrderLine struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderStatusChange struct {
	From      models.OrderStatus   `json:"from"`
	To        models.OrderStatus   `json:"to"`
	ActorID   int64                `json:"actor_id"`
	Stock     []models.StockChange `json:"stock_changes"`
	CreatedAt time.Time            `json:"created_at"`
}

type OrderDetail struct {
	Order
	Lines   []OrderLine         `json:"lines"`
	History []OrderStatusChange `json:"history,omitempty"`
}

type OrderListResponse struct {
	Items []*Order `json:"items"`
	Total int64    `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

type StatusOption struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Label string `json:"label"`
}
