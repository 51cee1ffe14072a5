package types

import "github.com/shopspring/decimal"

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	// Quantity 缺省为 1
	Quantity *int `json:"quantity" binding:"omitempty,gt=0,lte=999"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"gt=0,lte=999"`
}

type CartLine struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	ImageURL      string          `json:"image_url"`
	Color         string          `json:"color"`
	Size          string          `json:"size"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	StockQuantity int             `json:"stock_quantity"`
}

type CartView struct {
	Items       []CartLine      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int             `json:"count"`
}

type CartCount struct {
	Count int64 `json:"count"`
}
