package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Category struct {
	Repo[models.Category]
}

func NewCategory(db *gorm.DB) *Category {
	return &Category{Repo: NewRepo[models.Category](db)}
}

func (c *Category) ListAll(ctx context.Context) ([]*models.Category, error) {
	return c.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Parent").Order("name ASC").Order("id ASC")
	})
}

// NonEmpty 至少有一个商品的分类
func (c *Category) NonEmpty(ctx context.Context) ([]*models.Category, error) {
	return c.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM products WHERE products.category_id = categories.id)").
			Order("id ASC")
	})
}

func (c *Category) CountChildren(ctx context.Context, id int64) (int64, error) {
	return c.QueryCount(ctx, "parent_id = ?", id)
}

func (c *Category) CountProducts(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := c.Db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (c *Category) UpdateFields(ctx context.Context, item *models.Category) error {
	return c.Db.WithContext(ctx).Model(item).
		Select("name", "parent_id", "description").
		Updates(item).Error
}
