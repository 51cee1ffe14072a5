package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product ParentID 为空是基础商品, 非空表示该基础商品的一个 颜色/尺码 变体
type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name          string          `gorm:"column:name;size:200;not null;index:idx_products_name" json:"name"`
	CategoryID    int64           `gorm:"column:category_id;not null;index:idx_products_category" json:"category_id"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	Size          string          `gorm:"column:size;size:50;not null" json:"size"`
	Color         string          `gorm:"column:color;size:50;not null" json:"color"`
	Description   string          `gorm:"column:description;size:255;not null" json:"description"`
	ImageURL      string          `gorm:"column:image_url;size:250;not null" json:"image_url"`
	ParentID      *int64          `gorm:"column:parent_id;index:idx_products_parent" json:"parent_id,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) IsBase() bool {
	return p.ParentID == nil
}

// BaseID 变体归属的基础商品 ID
func (p *Product) BaseID() int64 {
	if p.ParentID != nil {
		return *p.ParentID
	}
	return p.ID
}

// ProductImage 商品图片, 存储在 OSS
type ProductImage struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	ProductID int64     `gorm:"column:product_id;not null;index:idx_product_images_product" json:"product_id"`
	ImageURL  string    `gorm:"column:image_url;size:250;not null" json:"image_url"`
	OssKey    string    `gorm:"column:oss_key;size:255;not null" json:"-"`
	Width     int       `gorm:"column:width;not null" json:"width"`
	Height    int       `gorm:"column:height;not null" json:"height"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	ParentID    *int64    `gorm:"column:parent_id;index:idx_categories_parent" json:"parent_id,omitempty"`
	Description string    `gorm:"column:description;size:500" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Parent *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
