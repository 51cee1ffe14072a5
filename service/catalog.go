package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"strings"

	"github.com/sourcegraph/conc/iter"
	"gorm.io/gorm"
)

const (
	featuredLimit        = 8
	categorySectionLimit = 4
	relatedLimit         = 4
	suggestDefaultLimit  = 8
	suggestMaxLimit      = 20
)

type CatalogService struct {
	ProductRepo  *dao.Product
	CategoryRepo *dao.Category
}

var _ ICatalogService = (*CatalogService)(nil)

type ICatalogService interface {
	Home(ctx context.Context) (*types.HomeResponse, error)
	ListProducts(ctx context.Context, categoryID int64) (*types.ProductListResponse, error)
	Search(ctx context.Context, q string) (*types.SearchResponse, error)
	Suggest(ctx context.Context, q string, limit int) ([]string, error)
	Detail(ctx context.Context, id int64) (*types.ProductDetailResponse, error)
	Variant(ctx context.Context, productID int64, color, size string) (*types.Variant, error)
}

// index 加载基础商品的全部变体并建立索引
func (s *CatalogService) index(ctx context.Context, bases []*models.Product) (*VariantIndex, error) {
	ids := make([]int64, 0, len(bases))
	for _, b := range bases {
		ids = append(ids, b.ID)
	}
	variants, err := s.ProductRepo.VariantsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	all := make([]*models.Product, 0, len(bases)+len(variants))
	all = append(all, bases...)
	all = append(all, variants...)
	return NewVariantIndex(all), nil
}

func (s *CatalogService) Home(ctx context.Context) (*types.HomeResponse, error) {
	featured, err := s.ProductRepo.Featured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryRepo.NonEmpty(ctx)
	if err != nil {
		return nil, err
	}

	// 各分类并发加载
	sections, err := iter.MapErr(categories, func(c **models.Category) ([]*models.Product, error) {
		return s.ProductRepo.ByCategory(ctx, (*c).ID, categorySectionLimit)
	})
	if err != nil {
		return nil, err
	}

	bases := append([]*models.Product{}, featured...)
	sectionIDs := make([][]int64, len(categories))
	for i, items := range sections {
		for _, p := range items {
			sectionIDs[i] = append(sectionIDs[i], p.ID)
		}
		bases = append(bases, items...)
	}

	idx, err := s.index(ctx, dedupe(bases))
	if err != nil {
		return nil, err
	}

	featuredIDs := make([]int64, 0, len(featured))
	for _, p := range featured {
		featuredIDs = append(featuredIDs, p.ID)
	}
	resp := &types.HomeResponse{
		Featured:   idx.CardsFor(featuredIDs),
		Categories: make([]*types.CategorySection, 0, len(categories)),
	}
	for i, c := range categories {
		if len(sectionIDs[i]) == 0 {
			continue
		}
		resp.Categories = append(resp.Categories, &types.CategorySection{
			Category: c,
			Products: idx.CardsFor(sectionIDs[i]),
		})
	}
	return resp, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID int64) (*types.ProductListResponse, error) {
	categories, err := s.CategoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	bases, err := s.ProductRepo.Bases(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	idx, err := s.index(ctx, bases)
	if err != nil {
		return nil, err
	}
	return &types.ProductListResponse{
		Categories:       categories,
		SelectedCategory: categoryID,
		Products:         idx.Cards(),
	}, nil
}

// Search 命中变体时归并到基础商品
func (s *CatalogService) Search(ctx context.Context, q string) (*types.SearchResponse, error) {
	q = strings.TrimSpace(q)
	resp := &types.SearchResponse{Query: q, Products: []*types.ProductCard{}}
	if q == "" {
		return resp, nil
	}

	hits, err := s.ProductRepo.SearchByName(ctx, q)
	if err != nil {
		return nil, err
	}

	baseIDs := make([]int64, 0, len(hits))
	seen := make(map[int64]struct{}, len(hits))
	loaded := make(map[int64]*models.Product, len(hits))
	for _, p := range hits {
		if p.IsBase() {
			loaded[p.ID] = p
		}
		id := p.BaseID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		baseIDs = append(baseIDs, id)
	}

	missing := make([]int64, 0)
	for _, id := range baseIDs {
		if _, ok := loaded[id]; !ok {
			missing = append(missing, id)
		}
	}
	bases := make([]*models.Product, 0, len(baseIDs))
	for _, id := range baseIDs {
		if p, ok := loaded[id]; ok {
			bases = append(bases, p)
		}
	}
	if len(missing) > 0 {
		extra, err := s.ProductRepo.FindByIds(ctx, missing)
		if err != nil {
			return nil, err
		}
		bases = append(bases, extra...)
	}

	idx, err := s.index(ctx, bases)
	if err != nil {
		return nil, err
	}
	resp.Products = idx.CardsFor(baseIDs)
	return resp, nil
}

func (s *CatalogService) Suggest(ctx context.Context, q string, limit int) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = suggestDefaultLimit
	}
	if limit > suggestMaxLimit {
		limit = suggestMaxLimit
	}
	return s.ProductRepo.SuggestNames(ctx, q, limit)
}

func (s *CatalogService) Detail(ctx context.Context, id int64) (*types.ProductDetailResponse, error) {
	product, err := s.ProductRepo.FindDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	baseID := product.BaseID()
	family, err := s.ProductRepo.Family(ctx, baseID)
	if err != nil {
		return nil, err
	}
	idx := NewVariantIndex(family)

	variants := make([]*types.Variant, 0, len(family))
	for _, p := range idx.Members(baseID) {
		variants = append(variants, toVariant(p))
	}

	related, err := s.ProductRepo.Related(ctx, product.CategoryID, baseID, relatedLimit)
	if err != nil {
		return nil, err
	}
	relIdx, err := s.index(ctx, related)
	if err != nil {
		return nil, err
	}

	return &types.ProductDetailResponse{
		Product:  product,
		Colors:   idx.Colors(baseID),
		Sizes:    idx.Sizes(baseID),
		Variants: variants,
		Related:  relIdx.Cards(),
	}, nil
}

// Variant productID 可以是基础商品或它的任一变体
func (s *CatalogService) Variant(ctx context.Context, productID int64, color, size string) (*types.Variant, error) {
	product, err := s.ProductRepo.FindById(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	baseID := product.BaseID()
	family, err := s.ProductRepo.Family(ctx, baseID)
	if err != nil {
		return nil, err
	}
	idx := NewVariantIndex(family)
	if idx.Base(baseID) == nil {
		return nil, ErrProductNotFound
	}
	v := idx.Find(baseID, color, size)
	if v == nil {
		return nil, ErrVariantNotFound
	}
	return toVariant(v), nil
}

func toVariant(p *models.Product) *types.Variant {
	return &types.Variant{
		ProductID:     p.ID,
		Color:         p.Color,
		Size:          p.Size,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}

func dedupe(products []*models.Product) []*models.Product {
	seen := make(map[int64]struct{}, len(products))
	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
