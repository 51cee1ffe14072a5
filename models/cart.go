package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem (user_id, product_id) 唯一; Price 是加入购物车时的价格快照
type CartItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    int64           `gorm:"column:user_id;not null;uniqueIndex:uk_cart_user_product,priority:1" json:"user_id"`
	ProductID int64           `gorm:"column:product_id;not null;uniqueIndex:uk_cart_user_product,priority:2" json:"product_id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Size      string          `gorm:"column:size;size:50" json:"size"`
	Color     string          `gorm:"column:color;size:50" json:"color"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (c *CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
