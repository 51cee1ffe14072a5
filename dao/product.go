package dao

import (
	"Storefront/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

func (p *Product) WithTx(tx *gorm.DB) *Product {
	return &Product{Repo: p.Repo.WithDB(tx)}
}

func baseOnly(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL")
}

// likeEscaper 转义 LIKE 通配符; 用 ! 而不是反斜杠, mysql 字符串里的反斜杠本身需要转义
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

const nameLike = "LOWER(name) LIKE ? ESCAPE '!'"

func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

// Featured 首页推荐, 最新的基础商品
func (p *Product) Featured(ctx context.Context, limit int) ([]*models.Product, error) {
	return p.FindAll(ctx, baseOnly, func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC").Limit(limit)
	})
}

func (p *Product) ByCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Product, error) {
	return p.FindAll(ctx, baseOnly, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID).Order("id ASC").Limit(limit)
	})
}

// Bases 基础商品, categoryID 为 0 时不过滤
func (p *Product) Bases(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	return p.FindAll(ctx, baseOnly, func(db *gorm.DB) *gorm.DB {
		if categoryID > 0 {
			db = db.Where("category_id = ?", categoryID)
		}
		return db.Order("id ASC")
	})
}

// VariantsOf 返回这些基础商品的全部变体
func (p *Product) VariantsOf(ctx context.Context, baseIDs []int64) ([]*models.Product, error) {
	if len(baseIDs) == 0 {
		return []*models.Product{}, nil
	}
	return p.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("parent_id IN ?", baseIDs).Order("id ASC")
	})
}

// Family 基础商品本身和它的所有变体
func (p *Product) Family(ctx context.Context, baseID int64) ([]*models.Product, error) {
	return p.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? OR parent_id = ?", baseID, baseID).Order("id ASC")
	})
}

// SearchByName 名称不区分大小写的子串匹配, 包含变体
func (p *Product) SearchByName(ctx context.Context, q string) ([]*models.Product, error) {
	return p.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(nameLike, likePattern(q)).Order("id ASC")
	})
}

func (p *Product) SuggestNames(ctx context.Context, q string, limit int) ([]string, error) {
	names := make([]string, 0, limit)
	err := p.Model(ctx).Scopes(baseOnly).
		Where(nameLike, likePattern(q)).
		Distinct("name").Order("name ASC").Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

func (p *Product) FindDetail(ctx context.Context, id int64) (*models.Product, error) {
	var item models.Product
	err := p.Db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC").Order("id ASC")
		}).
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (p *Product) Related(ctx context.Context, categoryID, excludeID int64, limit int) ([]*models.Product, error) {
	return p.FindAll(ctx, baseOnly, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ? AND id <> ?", categoryID, excludeID).Order("id ASC").Limit(limit)
	})
}

// DecrementStock 条件扣减, 库存不足时返回 false 且不修改
func (p *Product) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	res := p.Model(ctx).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (p *Product) IncrementStock(ctx context.Context, id int64, qty int) error {
	return p.Model(ctx).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error
}

func (p *Product) CountVariants(ctx context.Context, baseID int64) (int64, error) {
	return p.QueryCount(ctx, "parent_id = ?", baseID)
}

// ParentOptions 可作为父商品的基础商品, 排除自身
func (p *Product) ParentOptions(ctx context.Context, excludeID int64) ([]*models.Product, error) {
	return p.FindAll(ctx, baseOnly, func(db *gorm.DB) *gorm.DB {
		if excludeID > 0 {
			db = db.Where("id <> ?", excludeID)
		}
		return db.Order("name ASC")
	})
}

func (p *Product) List(ctx context.Context, offset, limit int) ([]*models.Product, int64, error) {
	var total int64
	if err := p.Model(ctx).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]*models.Product, 0, limit)
	err := p.Db.WithContext(ctx).Preload("Category").
		Order("id DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// UpdateFields 整体覆盖可编辑字段, parent_id 允许置空
func (p *Product) UpdateFields(ctx context.Context, item *models.Product) error {
	return p.Db.WithContext(ctx).Model(item).Select(
		"name", "category_id", "price", "stock_quantity", "size", "color",
		"description", "image_url", "parent_id",
	).Updates(item).Error
}

// CountOrdered 被订单明细引用的次数
func (p *Product) CountOrdered(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := p.Db.WithContext(ctx).Model(&models.OrderDetail{}).Where("product_id = ?", id).Count(&count).Error
	return count, err
}

func (p *Product) DeleteWithImages(ctx context.Context, id int64) error {
	if err := p.Db.WithContext(ctx).Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	return p.Db.WithContext(ctx).Delete(&models.Product{}, id).Error
}
