package types

import "github.com/shopspring/decimal"

type ChartData struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

type TopProduct struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url"`
	TotalSold   int64  `json:"total_sold"`
}

type DashboardStats struct {
	Revenue         decimal.Decimal `json:"revenue"`
	DeliveredOrders int64           `json:"delivered_orders"`
	Orders          int64           `json:"orders"`
	PendingOrders   int64           `json:"pending_orders"`
	Users           int64           `json:"users"`
	Products        int64           `json:"products"`
}
