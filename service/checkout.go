package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/hashid"
	"Storefront/pkg/log"
	"Storefront/pkg/validate"
	"Storefront/types"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	confirmLockTTL = 30 * time.Second
	markRetries    = 3
)

type CheckoutService struct {
	DB          *gorm.DB
	Config      *config.Config
	ProductRepo *dao.Product
	CartRepo    *dao.Cart
	OrderRepo   *dao.Order
	Storage     *cache.CheckoutStorage
	Events      IOrderEvents
	Codec       *hashid.Codec

	Now func() time.Time `wire:"-"`
}

var _ ICheckoutService = (*CheckoutService)(nil)

type ICheckoutService interface {
	// Start 生成价格锁定的结算快照并保存到 redis
	Start(ctx context.Context, userID int64, req *types.CheckoutRequest) (*types.CheckoutResponse, error)
	Get(ctx context.Context, userID int64, token string) (*types.CheckoutResponse, error)
	// Confirm 只信任立即购买的数量, 商品和价格都取自快照
	Confirm(ctx context.Context, userID int64, token string, req *types.ConfirmCheckoutRequest) (*types.ConfirmCheckoutResponse, error)
}

func (s *CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *CheckoutService) Start(ctx context.Context, userID int64, req *types.CheckoutRequest) (*types.CheckoutResponse, error) {
	var (
		items []types.CheckoutItem
		err   error
	)
	switch {
	case req.BuyNow():
		items, err = s.buyNowItems(ctx, req.ProductID, req.Quantity)
	case len(req.CartItemIDs) > 0:
		items, err = s.cartItems(ctx, userID, req.CartItemIDs)
	default:
		err = ErrEmptyCheckout
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	ttl := s.Config.Checkout.TTL()
	snap := &types.CheckoutSnapshot{
		Token:     uuid.NewString(),
		UserID:    userID,
		BuyNow:    req.BuyNow(),
		Items:     items,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.Storage.Save(ctx, snap, ttl); err != nil {
		return nil, err
	}
	return s.response(ctx, snap)
}

func (s *CheckoutService) buyNowItems(ctx context.Context, productID int64, quantity int) ([]types.CheckoutItem, error) {
	if err := checkLineQuantity(quantity); err != nil {
		return nil, err
	}
	p, err := s.ProductRepo.FindById(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.StockQuantity < quantity {
		return nil, &StockError{ProductID: p.ID, ProductName: p.Name, Color: p.Color, Size: p.Size,
			Requested: quantity, Available: p.StockQuantity}
	}
	return []types.CheckoutItem{{
		ProductID:     p.ID,
		ProductName:   p.Name,
		ImageURL:      p.ImageURL,
		Color:         p.Color,
		Size:          p.Size,
		Quantity:      quantity,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}}, nil
}

// cartItems 不属于该用户的行直接忽略
func (s *CheckoutService) cartItems(ctx context.Context, userID int64, ids []int64) ([]types.CheckoutItem, error) {
	lines, err := s.CartRepo.FindOwnedIn(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCheckout
	}
	items := make([]types.CheckoutItem, 0, len(lines))
	for _, l := range lines {
		if err := checkLineQuantity(l.Quantity); err != nil {
			return nil, err
		}
		p := l.Product
		if p == nil {
			return nil, &StockError{ProductID: l.ProductID, Color: l.Color, Size: l.Size, Requested: l.Quantity}
		}
		if p.StockQuantity < l.Quantity {
			return nil, &StockError{ProductID: p.ID, ProductName: p.Name, Color: l.Color, Size: l.Size,
				Requested: l.Quantity, Available: p.StockQuantity}
		}
		items = append(items, types.CheckoutItem{
			CartItemID:    l.ID,
			ProductID:     l.ProductID,
			ProductName:   p.Name,
			ImageURL:      p.ImageURL,
			Color:         l.Color,
			Size:          l.Size,
			Quantity:      l.Quantity,
			Price:         l.Price,
			StockQuantity: p.StockQuantity,
		})
	}
	return items, nil
}

func (s *CheckoutService) Get(ctx context.Context, userID int64, token string) (*types.CheckoutResponse, error) {
	snap, err := s.Storage.Get(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, snap)
}

// response 收货地址和电话用上一单预填
func (s *CheckoutService) response(ctx context.Context, snap *types.CheckoutSnapshot) (*types.CheckoutResponse, error) {
	resp := &types.CheckoutResponse{
		Token:          snap.Token,
		BuyNow:         snap.BuyNow,
		Items:          snap.Items,
		TotalAmount:    snap.Total(),
		PaymentMethods: []string{models.PaymentMethodCOD},
		ExpiresAt:      snap.ExpiresAt,
	}
	last, err := s.OrderRepo.LastByUser(ctx, snap.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if last != nil {
		resp.ShippingAddress = last.ShippingAddress
		resp.Phone = last.Phone
	}
	return resp, nil
}

func (s *CheckoutService) replay(snap *types.CheckoutSnapshot) *types.ConfirmCheckoutResponse {
	return &types.ConfirmCheckoutResponse{
		OrderID:   snap.OrderID,
		OrderCode: s.code(snap.OrderID),
		Replayed:  true,
	}
}

func (s *CheckoutService) Confirm(ctx context.Context, userID int64, token string, req *types.ConfirmCheckoutRequest) (*types.ConfirmCheckoutResponse, error) {
	snap, err := s.Storage.Get(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if snap.OrderID > 0 {
		return s.replay(snap), nil
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	unlock, err := s.Storage.Lock(ctx, userID, token, confirmLockTTL)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 拿到锁后重新读取, 可能已被并发请求完成
	snap, err = s.Storage.Get(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if snap.OrderID > 0 {
		return s.replay(snap), nil
	}
	// redis 里的完成标记可能没写成功, 以订单表为准
	placed, err := s.OrderRepo.FindByCheckoutToken(ctx, userID, token)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if placed != nil {
		snap.OrderID = placed.ID
		s.markCompleted(ctx, snap)
		return s.replay(snap), nil
	}
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCheckout
	}

	if snap.BuyNow && req.Quantity > 0 {
		snap.Items[0].Quantity = req.Quantity
	}

	for i := range snap.Items {
		it := &snap.Items[i]
		if err := checkLineQuantity(it.Quantity); err != nil {
			return nil, err
		}
		p, err := s.ProductRepo.FindById(ctx, it.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if p == nil || p.StockQuantity < it.Quantity {
			e := &StockError{ProductID: it.ProductID, ProductName: it.ProductName, Color: it.Color, Size: it.Size,
				Requested: it.Quantity}
			if p != nil {
				e.Available = p.StockQuantity
			}
			return nil, e
		}
	}

	order, err := s.placeOrder(ctx, userID, snap, req)
	if err != nil {
		return nil, err
	}

	snap.OrderID = order.ID
	s.markCompleted(ctx, snap)
	if s.Events != nil {
		s.Events.OrderPlaced(ctx, order)
	}

	return &types.ConfirmCheckoutResponse{
		OrderID:   order.ID,
		OrderCode: s.code(order.ID),
	}, nil
}

// markCompleted 写回订单号, 全部失败时重放依赖 orders.checkout_token
func (s *CheckoutService) markCompleted(ctx context.Context, snap *types.CheckoutSnapshot) {
	var err error
	for i := 0; i < markRetries; i++ {
		if err = s.Storage.Update(ctx, snap); err == nil {
			return
		}
	}
	log.L.Warn("mark checkout completed failed", zap.String("token", snap.Token), zap.Int64("order_id", snap.OrderID), zap.Error(err))
}

// placeOrder 创建订单, 扣库存, 删除已结算的购物车行
func (s *CheckoutService) placeOrder(ctx context.Context, userID int64, snap *types.CheckoutSnapshot, req *types.ConfirmCheckoutRequest) (*models.Order, error) {
	order := &models.Order{
		UserID:          userID,
		CheckoutToken:   &snap.Token,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		PaymentMethod:   req.PaymentMethod,
		OrderDate:       s.now(),
		Version:         1,
		Details:         make([]models.OrderDetail, 0, len(snap.Items)),
	}
	for _, it := range snap.Items {
		order.Details = append(order.Details, models.OrderDetail{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}
	order.TotalAmount = order.ComputeTotal()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.OrderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		products := s.ProductRepo.WithTx(tx)
		for _, it := range snap.Items {
			ok, err := products.DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				e := &StockError{ProductID: it.ProductID, ProductName: it.ProductName, Color: it.Color, Size: it.Size,
					Requested: it.Quantity}
				if p, _ := products.FindById(ctx, it.ProductID); p != nil {
					e.Available = p.StockQuantity
				}
				return e
			}
		}
		if !snap.BuyNow {
			if _, err := s.CartRepo.WithTx(tx).DeleteOwned(ctx, userID, snap.CartItemIDs()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) code(id int64) string {
	if s.Codec == nil {
		return ""
	}
	return s.Codec.Encode(id)
}
