package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxLineQuantity 单行购物车数量上限, 与请求校验的 lte 保持一致
const maxLineQuantity = 999

type CartService struct {
	DB          *gorm.DB
	CartRepo    *dao.Cart
	ProductRepo *dao.Product
}

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	View(ctx context.Context, userID int64) (*types.CartView, error)
	Add(ctx context.Context, userID, productID int64, quantity int) (int64, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Remove(ctx context.Context, userID, itemID int64) error
	Count(ctx context.Context, userID int64) (int64, error)
}

func (s *CartService) View(ctx context.Context, userID int64) (*types.CartView, error) {
	items, err := s.CartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &types.CartView{Items: make([]types.CartLine, 0, len(items)), TotalAmount: decimal.Zero}
	for _, it := range items {
		line := types.CartLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Color:     it.Color,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
			LineTotal: it.LineTotal(),
		}
		if p := it.Product; p != nil {
			line.ProductName = p.Name
			line.ImageURL = p.ImageURL
			line.StockQuantity = p.StockQuantity
			if p.Category != nil {
				line.CategoryName = p.Category.Name
			}
		}
		view.TotalAmount = view.TotalAmount.Add(line.LineTotal)
		view.Items = append(view.Items, line)
	}
	view.Count = len(view.Items)
	return view, nil
}

// Add 同一商品合并为一行, 返回购物车行数
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	if err := checkLineQuantity(quantity); err != nil {
		return 0, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.ProductRepo.WithTx(tx).FindById(ctx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		carts := s.CartRepo.WithTx(tx)
		existing, err := carts.FindByUserProduct(ctx, userID, productID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		inCart := 0
		if existing != nil {
			inCart = existing.Quantity
		}
		// 用减法比较, 避免相加溢出
		if quantity > product.StockQuantity-inCart {
			return &QuantityError{Msg: fmt.Sprintf("only %d left in stock", product.StockQuantity)}
		}
		if quantity > maxLineQuantity-inCart {
			return &QuantityError{Msg: fmt.Sprintf("at most %d can be ordered", maxLineQuantity)}
		}

		if existing != nil {
			return carts.SetQuantity(ctx, existing.ID, inCart+quantity)
		}
		return carts.Create(ctx, &models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  quantity,
			Size:      product.Size,
			Color:     product.Color,
			Price:     product.Price,
		})
	})
	if err != nil {
		return 0, err
	}
	return s.CartRepo.CountByUser(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	item, err := s.CartRepo.FindOwned(ctx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartItemNotFound
	}
	if err != nil {
		return err
	}
	if err := checkLineQuantity(quantity); err != nil {
		return err
	}
	if item.Product != nil && quantity > item.Product.StockQuantity {
		return &QuantityError{Msg: fmt.Sprintf("at most %d can be ordered", item.Product.StockQuantity)}
	}
	return s.CartRepo.SetQuantity(ctx, item.ID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	n, err := s.CartRepo.DeleteOwned(ctx, userID, []int64{itemID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) Count(ctx context.Context, userID int64) (int64, error) {
	return s.CartRepo.CountByUser(ctx, userID)
}

func checkLineQuantity(quantity int) error {
	if quantity <= 0 {
		return &QuantityError{Msg: "quantity must be greater than 0"}
	}
	if quantity > maxLineQuantity {
		return &QuantityError{Msg: fmt.Sprintf("at most %d can be ordered", maxLineQuantity)}
	}
	return nil
}
