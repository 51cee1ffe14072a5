package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

// Image 商品图片, 文件本身存在 OSS
type Image struct {
	Repo[models.ProductImage]
}

func NewImage(db *gorm.DB) *Image {
	return &Image{
		Repo: NewRepo[models.ProductImage](db),
	}
}

func (i *Image) CreateImage(ctx context.Context, image *models.ProductImage) error {
	return i.Db.WithContext(ctx).Create(image).Error
}

// CountByProduct 为 0 时新图片作为主图
func (i *Image) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	return i.QueryCount(ctx, "product_id = ?", productID)
}
