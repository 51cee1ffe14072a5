package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const PaymentMethodCOD = "COD"

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID          int64           `gorm:"column:user_id;not null;index:idx_orders_user" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"column:status;type:smallint;not null;default:0;index:idx_orders_status_date,priority:1" json:"status"`
	ShippingAddress string          `gorm:"column:shipping_address;size:500;not null" json:"shipping_address"`
	Phone           string          `gorm:"column:phone;size:32;not null" json:"phone"`
	PaymentMethod   string          `gorm:"column:payment_method;size:20;not null" json:"payment_method"`
	OrderDate       time.Time       `gorm:"column:order_date;not null;index:idx_orders_status_date,priority:2" json:"order_date"`
	// CheckoutToken 生成该订单的结算单, 同一结算单只能下一单
	CheckoutToken *string `gorm:"column:checkout_token;size:64;uniqueIndex:uk_orders_checkout_token" json:"-"`
	// Version 乐观锁, 每次状态变更 +1
	Version   int64     `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User    *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Details []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// ComputeTotal Σ(quantity × unit_price)
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Details {
		total = total.Add(o.Details[i].LineTotal())
	}
	return total
}

type OrderDetail struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID   int64           `gorm:"column:order_id;not null;index:idx_order_details_order" json:"order_id"`
	ProductID int64           `gorm:"column:product_id;not null;index:idx_order_details_product" json:"product_id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(18,2);not null" json:"unit_price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}

func (d *OrderDetail) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// StockChange 一次状态迁移中单个商品的库存变化
type StockChange struct {
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
}

// OrderStatusLog 每次生效的状态迁移记录一行
type OrderStatusLog struct {
	ID           int64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID      int64          `gorm:"column:order_id;not null;index:idx_order_status_logs_order" json:"order_id"`
	FromStatus   OrderStatus    `gorm:"column:from_status;type:smallint;not null" json:"from_status"`
	ToStatus     OrderStatus    `gorm:"column:to_status;type:smallint;not null" json:"to_status"`
	ActorID      int64          `gorm:"column:actor_id;not null" json:"actor_id"`
	StockChanges datatypes.JSON `gorm:"column:stock_changes" json:"stock_changes"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
