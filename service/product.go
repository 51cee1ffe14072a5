package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultProductPageSize = 20
	maxProductPageSize     = 100
)

// ProductService 后台商品管理
type ProductService struct {
	DB           *gorm.DB
	ProductRepo  *dao.Product
	CategoryRepo *dao.Category
	CartRepo     *dao.Cart
}

var _ IProductService = (*ProductService)(nil)

type IProductService interface {
	List(ctx context.Context, page, pageSize int) (*types.ProductPage, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req *types.ProductRequest) (*models.Product, error)
	Update(ctx context.Context, id int64, req *types.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	FormOptions(ctx context.Context, excludeID int64) (*types.ProductFormOptions, error)
}

func (s *ProductService) List(ctx context.Context, page, pageSize int) (*types.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultProductPageSize
	}
	if pageSize > maxProductPageSize {
		pageSize = maxProductPageSize
	}
	items, total, err := s.ProductRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &types.ProductPage{Items: items, Total: total}, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.ProductRepo.FindDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (s *ProductService) Create(ctx context.Context, req *types.ProductRequest) (*models.Product, error) {
	p := &models.Product{}
	if err := s.apply(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req *types.ProductRequest) (*models.Product, error) {
	p, err := s.ProductRepo.FindById(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.ProductRepo.UpdateFields(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// apply 校验请求并写入 p; p.ID 为 0 表示新建
func (s *ProductService) apply(ctx context.Context, p *models.Product, req *types.ProductRequest) error {
	if req.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if _, err := s.CategoryRepo.FindById(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	parentID := normalizeParent(req.ParentID)
	if parentID != nil {
		if *parentID == p.ID {
			return ErrInvalidParent
		}
		parent, err := s.ProductRepo.FindById(ctx, *parentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}
		if !parent.IsBase() {
			return ErrInvalidParent
		}
		if p.ID > 0 {
			n, err := s.ProductRepo.CountVariants(ctx, p.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrProductHasVariants
			}
		}
	}

	p.Name = strings.TrimSpace(req.Name)
	p.CategoryID = req.CategoryID
	p.Price = req.Price.Round(2)
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	p.Size = strings.TrimSpace(req.Size)
	p.Color = strings.TrimSpace(req.Color)
	p.Description = req.Description
	p.ImageURL = req.ImageURL
	p.ParentID = parentID
	return nil
}

// Delete 已下单的商品不能删除, 购物车行和图片一起清理
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.ProductRepo.WithTx(tx)
		if _, err := products.FindById(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		variants, err := products.CountVariants(ctx, id)
		if err != nil {
			return err
		}
		if variants > 0 {
			return ErrProductHasChildren
		}
		ordered, err := products.CountOrdered(ctx, id)
		if err != nil {
			return err
		}
		if ordered > 0 {
			return ErrProductInUse
		}

		if err := s.CartRepo.WithTx(tx).DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return products.DeleteWithImages(ctx, id)
	})
}

func (s *ProductService) FormOptions(ctx context.Context, excludeID int64) (*types.ProductFormOptions, error) {
	categories, err := s.CategoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	parents, err := s.ProductRepo.ParentOptions(ctx, excludeID)
	if err != nil {
		return nil, err
	}

	opts := &types.ProductFormOptions{
		Categories: make([]types.Option, 0, len(categories)),
		Parents:    []types.Option{{Name: "-- No parent --"}},
	}
	for _, c := range categories {
		id := c.ID
		opts.Categories = append(opts.Categories, types.Option{ID: &id, Name: c.Name})
	}
	for _, p := range parents {
		id := p.ID
		opts.Parents = append(opts.Parents, types.Option{ID: &id, Name: p.Name + " (" + p.Color + ", " + p.Size + ")"})
	}
	return opts, nil
}
