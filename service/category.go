package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *dao.Category
}

var _ ICategoryService = (*CategoryService)(nil)

type ICategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, req *types.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req *types.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	// ParentOptions 下拉选项, 第一个是 "no parent", 编辑时排除自身
	ParentOptions(ctx context.Context, excludeID int64) ([]types.Option, error)
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.CategoryRepo.ListAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.CategoryRepo.FindById(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

func (s *CategoryService) Create(ctx context.Context, req *types.CategoryRequest) (*models.Category, error) {
	c := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		ParentID:    normalizeParent(req.ParentID),
		Description: req.Description,
	}
	if c.ParentID != nil {
		if _, err := s.Get(ctx, *c.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.CategoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req *types.CategoryRequest) (*models.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	parentID := normalizeParent(req.ParentID)
	if parentID != nil {
		if err := s.checkAncestry(ctx, id, *parentID); err != nil {
			return nil, err
		}
	}

	c.Name = strings.TrimSpace(req.Name)
	c.ParentID = parentID
	c.Description = req.Description
	if err := s.CategoryRepo.UpdateFields(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkAncestry 从新父节点向上走, 遇到自身说明成环
func (s *CategoryService) checkAncestry(ctx context.Context, id, parentID int64) error {
	all, err := s.CategoryRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	parents := make(map[int64]*int64, len(all))
	for _, c := range all {
		parents[c.ID] = c.ParentID
	}
	if _, ok := parents[parentID]; !ok {
		return ErrCategoryNotFound
	}

	seen := make(map[int64]bool)
	for cur := &parentID; cur != nil; cur = parents[*cur] {
		if *cur == id {
			return ErrCategoryCycle
		}
		if seen[*cur] {
			break
		}
		seen[*cur] = true
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	children, err := s.CategoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}
	products, err := s.CategoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return ErrCategoryHasProducts
	}
	_, err = s.CategoryRepo.Delete(ctx, id)
	return err
}

func (s *CategoryService) ParentOptions(ctx context.Context, excludeID int64) ([]types.Option, error) {
	all, err := s.CategoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})

	opts := []types.Option{{Name: "-- No parent --"}}
	for _, c := range all {
		if c.ID == excludeID {
			continue
		}
		id := c.ID
		opts = append(opts, types.Option{ID: &id, Name: c.Name})
	}
	return opts, nil
}

func normalizeParent(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}
