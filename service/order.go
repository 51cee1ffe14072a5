package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/hashid"
	"Storefront/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	OrderRepo   *dao.Order
	ProductRepo *dao.Product
	Events      IOrderEvents
	Codec       *hashid.Codec
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	ListForUser(ctx context.Context, userID int64) ([]*types.Order, error)
	GetForUser(ctx context.Context, userID, orderID int64) (*types.OrderDetail, error)
	// Cancel 顾客取消, 仅限 Pending / Processing
	Cancel(ctx context.Context, userID, orderID int64) (*types.Order, error)

	ListAll(ctx context.Context, status *models.OrderStatus, page, pageSize int) (*types.OrderListResponse, error)
	Get(ctx context.Context, orderID int64) (*types.OrderDetail, error)
	// UpdateStatus 管理员可以迁移到任意合法状态
	UpdateStatus(ctx context.Context, actorID, orderID int64, to models.OrderStatus) (*types.Order, error)
	StatusOptions() []types.StatusOption
}

type TransitionRequest struct {
	OrderID int64
	// OwnerID 非 0 时只允许操作该用户的订单
	OwnerID int64
	ActorID int64
	To      models.OrderStatus
	// CustomerCancel 顾客取消时额外校验当前状态
	CustomerCancel bool
}

// Transition 状态变更和库存补偿在同一个事务内完成; changed 为 false 表示状态未变
func (s *OrderService) Transition(ctx context.Context, req TransitionRequest) (order *models.Order, changed bool, err error) {
	if !req.To.Valid() {
		return nil, false, ErrInvalidStatus
	}

	var from models.OrderStatus
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.OrderRepo.WithTx(tx)
		products := s.ProductRepo.WithTx(tx)

		o, err := orders.FindWithDetails(ctx, req.OrderID, req.OwnerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		order, from = o, o.Status

		if req.CustomerCancel && !o.Status.CustomerCancellable() {
			return ErrCancelNotAllowed
		}

		effect, ok := models.PlanTransition(o.Status, req.To)
		if !ok {
			return nil
		}

		changes := make([]models.StockChange, 0, len(o.Details))
		switch effect {
		case models.StockRestore:
			for _, d := range o.Details {
				if err := products.IncrementStock(ctx, d.ProductID, d.Quantity); err != nil {
					return err
				}
				changes = append(changes, models.StockChange{ProductID: d.ProductID, Delta: d.Quantity})
			}
		case models.StockReserve:
			// 先全部检查, 任一行不足则不做任何修改
			for _, d := range o.Details {
				p, err := products.FindById(ctx, d.ProductID)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if p == nil || p.StockQuantity < d.Quantity {
					return stockError(d, p)
				}
			}
			for _, d := range o.Details {
				ok, err := products.DecrementStock(ctx, d.ProductID, d.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					p, _ := products.FindById(ctx, d.ProductID)
					return stockError(d, p)
				}
				changes = append(changes, models.StockChange{ProductID: d.ProductID, Delta: -d.Quantity})
			}
		case models.StockNone:
		default:
			return fmt.Errorf("unknown stock effect %v", effect)
		}

		updated, err := orders.UpdateStatus(ctx, o.ID, o.Version, req.To)
		if err != nil {
			return err
		}
		if !updated {
			return ErrConcurrencyConflict
		}

		raw, err := json.Marshal(changes)
		if err != nil {
			return err
		}
		if err := orders.CreateStatusLog(ctx, &models.OrderStatusLog{
			OrderID:      o.ID,
			FromStatus:   o.Status,
			ToStatus:     req.To,
			ActorID:      req.ActorID,
			StockChanges: datatypes.JSON(raw),
		}); err != nil {
			return err
		}

		o.Status = req.To
		o.Version++
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if changed && s.Events != nil {
		s.Events.StatusChanged(ctx, order, from, req.ActorID)
	}
	return order, changed, nil
}

func stockError(d models.OrderDetail, p *models.Product) error {
	e := &StockError{ProductID: d.ProductID, Requested: d.Quantity}
	if p == nil {
		p = d.Product
	} else {
		e.Available = p.StockQuantity
	}
	if p != nil {
		e.ProductName, e.Color, e.Size = p.Name, p.Color, p.Size
	}
	return e
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]*types.Order, error) {
	orders, err := s.OrderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]*types.Order, 0, len(orders))
	for _, o := range orders {
		items = append(items, s.toOrder(o))
	}
	return items, nil
}

func (s *OrderService) GetForUser(ctx context.Context, userID, orderID int64) (*types.OrderDetail, error) {
	o, err := s.OrderRepo.FindWithDetails(ctx, orderID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.toDetail(o), nil
}

func (s *OrderService) Cancel(ctx context.Context, userID, orderID int64) (*types.Order, error) {
	o, _, err := s.Transition(ctx, TransitionRequest{
		OrderID:        orderID,
		OwnerID:        userID,
		ActorID:        userID,
		To:             models.OrderStatusCancelled,
		CustomerCancel: true,
	})
	if err != nil {
		return nil, err
	}
	return s.toOrder(o), nil
}

func (s *OrderService) ListAll(ctx context.Context, status *models.OrderStatus, page, pageSize int) (*types.OrderListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	orders, total, err := s.OrderRepo.ListAll(ctx, status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	resp := &types.OrderListResponse{Items: make([]*types.Order, 0, len(orders)), Total: total}
	for _, o := range orders {
		resp.Items = append(resp.Items, s.toOrder(o))
	}
	return resp, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*types.OrderDetail, error) {
	o, err := s.OrderRepo.FindWithDetails(ctx, orderID, 0)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	detail := s.toDetail(o)

	logs, err := s.OrderRepo.StatusLogs(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		change := types.OrderStatusChange{From: l.FromStatus, To: l.ToStatus, ActorID: l.ActorID, CreatedAt: l.CreatedAt}
		if len(l.StockChanges) > 0 {
			_ = json.Unmarshal(l.StockChanges, &change.Stock)
		}
		detail.History = append(detail.History, change)
	}
	return detail, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID int64, to models.OrderStatus) (*types.Order, error) {
	o, _, err := s.Transition(ctx, TransitionRequest{
		OrderID: orderID,
		ActorID: actorID,
		To:      to,
	})
	if err != nil {
		return nil, err
	}
	return s.toOrder(o), nil
}

func (s *OrderService) StatusOptions() []types.StatusOption {
	opts := make([]types.StatusOption, 0, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		opts = append(opts, types.StatusOption{Value: int(st), Name: st.String(), Label: st.Label()})
	}
	return opts
}

func (s *OrderService) code(id int64) string {
	if s.Codec == nil {
		return ""
	}
	return s.Codec.Encode(id)
}

func (s *OrderService) toOrder(o *models.Order) *types.Order {
	item := &types.Order{
		ID:              o.ID,
		Code:            s.code(o.ID),
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		PaymentMethod:   o.PaymentMethod,
		OrderDate:       o.OrderDate,
		Version:         o.Version,
	}
	if o.User != nil {
		item.Email = o.User.Email
	}
	return item
}

func (s *OrderService) toDetail(o *models.Order) *types.OrderDetail {
	detail := &types.OrderDetail{Order: *s.toOrder(o), Lines: make([]types.OrderLine, 0, len(o.Details))}
	for i := range o.Details {
		d := &o.Details[i]
		line := types.OrderLine{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			LineTotal: d.LineTotal(),
		}
		if d.Product != nil {
			line.ProductName = d.Product.Name
			line.ImageURL = d.Product.ImageURL
			line.Color = d.Product.Color
			line.Size = d.Product.Size
		}
		detail.Lines = append(detail.Lines, line)
	}
	return detail
}
