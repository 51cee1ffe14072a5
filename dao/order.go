package dao

import (
	"Storefront/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{Repo: NewRepo[models.Order](db)}
}

func (o *Order) WithTx(tx *gorm.DB) *Order {
	return &Order{Repo: o.Repo.WithDB(tx)}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Details.Product")
}

// FindWithDetails userID 为 0 时不校验归属
func (o *Order) FindWithDetails(ctx context.Context, id, userID int64) (*models.Order, error) {
	var item models.Order
	db := o.Db.WithContext(ctx).Scopes(withDetails).Preload("User")
	if userID > 0 {
		db = db.Where("user_id = ?", userID)
	}
	if err := db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (o *Order) ListByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	return o.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("order_date DESC").Order("id DESC")
	})
}

func (o *Order) ListAll(ctx context.Context, status *models.OrderStatus, offset, limit int) ([]*models.Order, int64, error) {
	db := o.Model(ctx)
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]*models.Order, 0, limit)
	q := o.Db.WithContext(ctx).Preload("User")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Order("order_date DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (o *Order) FindByCheckoutToken(ctx context.Context, userID int64, token string) (*models.Order, error) {
	return o.FindByWhere(ctx, "user_id = ? AND checkout_token = ?", userID, token)
}

func (o *Order) LastByUser(ctx context.Context, userID int64) (*models.Order, error) {
	var item models.Order
	err := o.Db.WithContext(ctx).Where("user_id = ?", userID).
		Order("order_date DESC").Order("id DESC").First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStatus 按 version 乐观锁更新, 返回 false 表示版本已变化
func (o *Order) UpdateStatus(ctx context.Context, id, version int64, status models.OrderStatus) (bool, error) {
	res := o.Model(ctx).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":     status,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (o *Order) CreateStatusLog(ctx context.Context, log *models.OrderStatusLog) error {
	return o.Db.WithContext(ctx).Create(log).Error
}

func (o *Order) StatusLogs(ctx context.Context, orderID int64) ([]*models.OrderStatusLog, error) {
	items := make([]*models.OrderStatusLog, 0)
	err := o.Db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

// DeliveredBetween 已送达订单的日期和金额, [start, end)
func (o *Order) DeliveredBetween(ctx context.Context, start, end time.Time) ([]*models.Order, error) {
	return o.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "order_date", "total_amount").
			Where("status = ? AND order_date >= ? AND order_date < ?", models.OrderStatusDelivered, start, end)
	})
}

type ProductSales struct {
	BaseID    int64 `gorm:"column:base_id"`
	TotalSold int64 `gorm:"column:total_sold"`
}

// TopBaseProducts 按基础商品汇总销量, 变体计入 COALESCE(parent_id, id)
func (o *Order) TopBaseProducts(ctx context.Context, start, end time.Time, limit int) ([]*ProductSales, error) {
	items := make([]*ProductSales, 0, limit)
	err := o.Db.WithContext(ctx).Table("order_details AS d").
		Select("COALESCE(p.parent_id, p.id) AS base_id, SUM(d.quantity) AS total_sold").
		Joins("JOIN orders AS o ON o.id = d.order_id").
		Joins("JOIN products AS p ON p.id = d.product_id").
		Where("o.status = ? AND o.order_date >= ? AND o.order_date < ?", models.OrderStatusDelivered, start, end).
		Group("COALESCE(p.parent_id, p.id)").
		Order("total_sold DESC").Order("base_id ASC").
		Limit(limit).
		Scan(&items).Error
	return items, err
}

// DeliveredTotals 全部已送达订单
func (o *Order) DeliveredTotals(ctx context.Context) ([]*models.Order, error) {
	return o.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "total_amount").Where("status = ?", models.OrderStatusDelivered)
	})
}
