package models

import (
	"encoding/json"
	"fmt"
)

type OrderStatus int8

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusProcessing
	OrderStatusShipped
	OrderStatusDelivered
	OrderStatusCancelled
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("OrderStatus(%d)", int8(s))
	}
}

// Label 展示给用户的状态文案
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Awaiting processing"
	case OrderStatusProcessing:
		return "Packed"
	case OrderStatusShipped:
		return "Out for delivery"
	case OrderStatusDelivered:
		return "Delivered successfully"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s OrderStatus) Valid() bool {
	return s >= OrderStatusPending && s <= OrderStatusCancelled
}

func (s OrderStatus) Active() bool {
	return s.Valid() && s != OrderStatusCancelled
}

// CustomerCancellable 顾客只能取消尚未发货的订单
func (s OrderStatus) CustomerCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

func ParseOrderStatus(v int) (OrderStatus, error) {
	s := OrderStatus(v)
	if v < 0 || v > int(OrderStatusCancelled) {
		return 0, fmt.Errorf("invalid order status %d", v)
	}
	return s, nil
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value int8   `json:"value"`
		Name  string `json:"name"`
		Label string `json:"label"`
	}{int8(s), s.String(), s.Label()})
}

// StockEffect 状态迁移对库存的影响
type StockEffect int

const (
	StockNone StockEffect = iota
	// StockRestore 订单进入取消状态, 每行 stock += quantity
	StockRestore
	// StockReserve 已取消订单恢复, 全部行库存充足才扣减
	StockReserve
)

func (e StockEffect) String() string {
	switch e {
	case StockRestore:
		return "restore"
	case StockReserve:
		return "reserve"
	default:
		return "none"
	}
}

// PlanTransition 计算 from -> to 的库存影响; changed 为 false 表示状态不变
func PlanTransition(from, to OrderStatus) (effect StockEffect, changed bool) {
	if from == to {
		return StockNone, false
	}
	switch {
	case from.Active() && to == OrderStatusCancelled:
		return StockRestore, true
	case from == OrderStatusCancelled && to.Active():
		return StockReserve, true
	default:
		return StockNone, true
	}
}
