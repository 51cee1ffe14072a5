package service

import (
	"Storefront/models"
	"Storefront/types"
)

// VariantIndex 以基础商品 ID 为键的变体分组
// members[0] 总是基础商品本身 (已加载时)
type VariantIndex struct {
	order  []int64
	groups map[int64]*variantGroup
}

type variantGroup struct {
	base    *models.Product
	members []*models.Product
}

func NewVariantIndex(products []*models.Product) *VariantIndex {
	x := &VariantIndex{groups: make(map[int64]*variantGroup, len(products))}
	for _, p := range products {
		if p.IsBase() {
			g := x.group(p.ID)
			if g.base == nil {
				g.base = p
				g.members = append([]*models.Product{p}, g.members...)
			}
		}
	}
	for _, p := range products {
		if !p.IsBase() {
			g := x.group(*p.ParentID)
			g.members = append(g.members, p)
		}
	}
	return x
}

func (x *VariantIndex) group(baseID int64) *variantGroup {
	g, ok := x.groups[baseID]
	if !ok {
		g = &variantGroup{}
		x.groups[baseID] = g
		x.order = append(x.order, baseID)
	}
	return g
}

// Base 基础商品未加载时返回 nil
func (x *VariantIndex) Base(baseID int64) *models.Product {
	if g, ok := x.groups[baseID]; ok {
		return g.base
	}
	return nil
}

func (x *VariantIndex) Members(baseID int64) []*models.Product {
	if g, ok := x.groups[baseID]; ok {
		return g.members
	}
	return nil
}

func (x *VariantIndex) Colors(baseID int64) []string {
	return distinct(x.Members(baseID), func(p *models.Product) string { return p.Color })
}

func (x *VariantIndex) Sizes(baseID int64) []string {
	return distinct(x.Members(baseID), func(p *models.Product) string { return p.Size })
}

func (x *VariantIndex) Find(baseID int64, color, size string) *models.Product {
	for _, p := range x.Members(baseID) {
		if p.Color == color && p.Size == size {
			return p
		}
	}
	return nil
}

func (x *VariantIndex) Card(baseID int64) *types.ProductCard {
	g, ok := x.groups[baseID]
	if !ok || g.base == nil {
		return nil
	}
	card := &types.ProductCard{
		ID:           g.base.ID,
		Name:         g.base.Name,
		CategoryID:   g.base.CategoryID,
		ImageURL:     g.base.ImageURL,
		Price:        g.base.Price,
		MinPrice:     g.base.Price,
		MaxPrice:     g.base.Price,
		Colors:       x.Colors(baseID),
		Sizes:        x.Sizes(baseID),
		VariantCount: len(g.members),
	}
	for _, p := range g.members {
		card.TotalStock += p.StockQuantity
		if p.Price.LessThan(card.MinPrice) {
			card.MinPrice = p.Price
		}
		if p.Price.GreaterThan(card.MaxPrice) {
			card.MaxPrice = p.Price
		}
	}
	return card
}

// Cards 按插入顺序, 跳过缺少基础商品的分组
func (x *VariantIndex) Cards() []*types.ProductCard {
	return x.CardsFor(x.order)
}

func (x *VariantIndex) CardsFor(baseIDs []int64) []*types.ProductCard {
	cards := make([]*types.ProductCard, 0, len(baseIDs))
	for _, id := range baseIDs {
		if c := x.Card(id); c != nil {
			cards = append(cards, c)
		}
	}
	return cards
}

func distinct(products []*models.Product, key func(*models.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
