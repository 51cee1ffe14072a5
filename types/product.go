package types

import (
	"Storefront/models"

	"github.com/shopspring/decimal"
)

// ProductCard 基础商品及其变体汇总
type ProductCard struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `json:"price"`
	MinPrice     decimal.Decimal `json:"min_price"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	Colors       []string        `json:"colors"`
	Sizes        []string        `json:"sizes"`
	TotalStock   int             `json:"total_stock"`
	VariantCount int             `json:"variant_count"`
}

type CategorySection struct {
	Category *models.Category `json:"category"`
	Products []*ProductCard   `json:"products"`
}

type HomeResponse struct {
	Featured   []*ProductCard     `json:"featured"`
	Categories []*CategorySection `json:"categories"`
}

type ProductListQuery struct {
	CategoryID int64 `json:"category_id" form:"category_id" binding:"omitempty,gte=0"`
}

type ProductListResponse struct {
	Categories       []*models.Category `json:"categories"`
	SelectedCategory int64              `json:"selected_category,omitempty"`
	Products         []*ProductCard     `json:"products"`
}

type Variant struct {
	ProductID     int64           `json:"product_id"`
	Color         string          `json:"color"`
	Size          string          `json:"size"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

type ProductDetailResponse struct {
	Product  *models.Product `json:"product"`
	Colors   []string        `json:"colors"`
	Sizes    []string        `json:"sizes"`
	Variants []*Variant      `json:"variants"`
	Related  []*ProductCard  `json:"related"`
}

type SearchResponse struct {
	Query    string         `json:"query"`
	Products []*ProductCard `json:"products"`
}

type ProductRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	CategoryID    int64           `json:"category_id" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description" binding:"required,max=255"`
	StockQuantity *int            `json:"stock_quantity" binding:"required,gte=0"`
	ImageURL      string          `json:"image_url" binding:"required,max=250"`
	Size          string          `json:"size" binding:"required,max=50"`
	Color         string          `json:"color" binding:"required,max=50"`
	ParentID      *int64          `json:"parent_id"`
}

type Option struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type ProductFormOptions struct {
	Categories []Option `json:"categories"`
	Parents    []Option `json:"parents"`
}

type ProductPage struct {
	Items []*models.Product `json:"items"`
	Total int64             `json:"total"`
}
