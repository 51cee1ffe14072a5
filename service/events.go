package service

import (
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/rocketmq"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Event       string          `json:"event"`
	OrderID     int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	From        *int8           `json:"from,omitempty"`
	To          int8            `json:"to"`
	ActorID     int64           `json:"actor_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// IOrderEvents 订单事件在事务提交后发布, 发布失败只记录日志
type IOrderEvents interface {
	OrderPlaced(ctx context.Context, order *models.Order)
	StatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus, actorID int64)
}

type OrderEvents struct {
	MQ *rocketmq.Rocketmq
}

var _ IOrderEvents = (*OrderEvents)(nil)

func NewOrderEvents(mq *rocketmq.Rocketmq) IOrderEvents {
	return &OrderEvents{MQ: mq}
}

func (e *OrderEvents) OrderPlaced(ctx context.Context, order *models.Order) {
	e.send(ctx, &OrderEvent{
		Event:       EventOrderPlaced,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		To:          int8(order.Status),
		OccurredAt:  time.Now().UTC(),
	})
}

func (e *OrderEvents) StatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus, actorID int64) {
	f := int8(from)
	e.send(ctx, &OrderEvent{
		Event:       EventOrderStatusChanged,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		From:        &f,
		To:          int8(order.Status),
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	})
}

func (e *OrderEvents) send(ctx context.Context, evt *OrderEvent) {
	if e.MQ == nil || !e.MQ.Enabled() {
		return
	}
	body, err := json.Marshal(evt)
	if err != nil {
		log.L.Error("marshal order event", zap.Error(err))
		return
	}
	if err := e.MQ.SendMsg(ctx, evt.Event, strconv.FormatInt(evt.OrderID, 10), body); err != nil {
		log.L.Warn("publish order event failed",
			zap.String("event", evt.Event),
			zap.Int64("order_id", evt.OrderID),
			zap.Error(err),
		)
	}
}
