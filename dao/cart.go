package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Cart struct {
	Repo[models.CartItem]
}

func NewCart(db *gorm.DB) *Cart {
	return &Cart{Repo: NewRepo[models.CartItem](db)}
}

func (c *Cart) WithTx(tx *gorm.DB) *Cart {
	return &Cart{Repo: c.Repo.WithDB(tx)}
}

func (c *Cart) ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	return c.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Product.Category").Where("user_id = ?", userID).Order("id ASC")
	})
}

func (c *Cart) FindByUserProduct(ctx context.Context, userID, productID int64) (*models.CartItem, error) {
	return c.FindByWhere(ctx, "user_id = ? AND product_id = ?", userID, productID)
}

// FindOwned 只返回属于该用户的购物车行
func (c *Cart) FindOwned(ctx context.Context, userID, id int64) (*models.CartItem, error) {
	var item models.CartItem
	err := c.Db.WithContext(ctx).Preload("Product").
		Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Cart) FindOwnedIn(ctx context.Context, userID int64, ids []int64) ([]*models.CartItem, error) {
	if len(ids) == 0 {
		return []*models.CartItem{}, nil
	}
	return c.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Product").Where("user_id = ? AND id IN ?", userID, ids).Order("id ASC")
	})
}

func (c *Cart) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return c.QueryCount(ctx, "user_id = ?", userID)
}

func (c *Cart) SetQuantity(ctx context.Context, id int64, qty int) error {
	return c.Model(ctx).Where("id = ?", id).Update("quantity", qty).Error
}

func (c *Cart) DeleteOwned(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := c.Db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// DeleteByProduct 商品删除时清理所有购物车行
func (c *Cart) DeleteByProduct(ctx context.Context, productID int64) error {
	return c.Db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}
