package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const topProductsLimit = 10

const (
	FilterDay   = "day"
	FilterWeek  = "week"
	FilterMonth = "month"
	FilterYear  = "year"
)

type ReportService struct {
	OrderRepo   *dao.Order
	ProductRepo *dao.Product
	UserRepo    *dao.Users

	Now func() time.Time `wire:"-"`
}

var _ IReportService = (*ReportService)(nil)

// IReportService 只统计已送达 (Delivered) 的订单
type IReportService interface {
	Revenue(ctx context.Context, filter string) (*types.ChartData, error)
	TopProducts(ctx context.Context, filter string) ([]*types.TopProduct, error)
	Dashboard(ctx context.Context) (*types.DashboardStats, error)
}

type bucket struct {
	label      string
	start, end time.Time
}

// window 按筛选条件生成统计区间和分桶, 未知条件按 day 处理
func window(filter string, now time.Time) (start, end time.Time, buckets []bucket) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch filter {
	case FilterWeek:
		start, end = today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)
		for i := 0; i < 7; i++ {
			d := start.AddDate(0, 0, i)
			buckets = append(buckets, bucket{label: d.Format("02/01"), start: d, end: d.AddDate(0, 0, 1)})
		}
	case FilterMonth:
		diff := (int(today.Weekday()) - int(time.Monday) + 7) % 7
		startOfWeek := today.AddDate(0, 0, -diff)
		start, end = startOfWeek.AddDate(0, 0, -21), startOfWeek.AddDate(0, 0, 7)
		for i := 0; i < 4; i++ {
			ws := start.AddDate(0, 0, i*7)
			_, wn := ws.ISOWeek()
			label := fmt.Sprintf("Week %d (%s - %s)", wn, ws.Format("02/01"), ws.AddDate(0, 0, 6).Format("02/01"))
			buckets = append(buckets, bucket{label: label, start: ws, end: ws.AddDate(0, 0, 7)})
		}
	case FilterYear:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		start, end = firstOfMonth.AddDate(0, -11, 0), firstOfMonth.AddDate(0, 1, 0)
		for i := 0; i < 12; i++ {
			m := start.AddDate(0, i, 0)
			buckets = append(buckets, bucket{label: m.Format("01/2006"), start: m, end: m.AddDate(0, 1, 0)})
		}
	default:
		start, end = today, today.AddDate(0, 0, 1)
		buckets = []bucket{{label: today.Format("02/01/2006"), start: start, end: end}}
	}
	return start, end, buckets
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ReportService) Revenue(ctx context.Context, filter string) (*types.ChartData, error) {
	start, end, buckets := window(filter, s.now())

	orders, err := s.OrderRepo.DeliveredBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	chart := &types.ChartData{
		Labels: make([]string, len(buckets)),
		Data:   make([]decimal.Decimal, len(buckets)),
	}
	for i, b := range buckets {
		chart.Labels[i] = b.label
		chart.Data[i] = decimal.Zero
	}
	for _, o := range orders {
		at := o.OrderDate.UTC()
		for i, b := range buckets {
			if !at.Before(b.start) && at.Before(b.end) {
				chart.Data[i] = chart.Data[i].Add(o.TotalAmount)
				break
			}
		}
	}
	return chart, nil
}

// TopProducts 变体销量汇总到基础商品
func (s *ReportService) TopProducts(ctx context.Context, filter string) ([]*types.TopProduct, error) {
	start, end, _ := window(filter, s.now())

	sales, err := s.OrderRepo.TopBaseProducts(ctx, start, end, topProductsLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(sales))
	for _, r := range sales {
		ids = append(ids, r.BaseID)
	}
	products, err := s.ProductRepo.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	result := make([]*types.TopProduct, 0, len(sales))
	for _, r := range sales {
		p, ok := byID[r.BaseID]
		if !ok {
			continue
		}
		result = append(result, &types.TopProduct{
			ProductID:   p.ID,
			ProductName: p.Name,
			ImageURL:    p.ImageURL,
			TotalSold:   r.TotalSold,
		})
	}
	return result, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (*types.DashboardStats, error) {
	var (
		g     errgroup.Group
		mu    sync.Mutex
		stats = &types.DashboardStats{Revenue: decimal.Zero}
	)

	g.Go(func() error {
		orders, err := s.OrderRepo.DeliveredTotals(ctx)
		if err != nil {
			return err
		}
		revenue := decimal.Zero
		for _, o := range orders {
			revenue = revenue.Add(o.TotalAmount)
		}
		mu.Lock()
		stats.Revenue = revenue
		stats.DeliveredOrders = int64(len(orders))
		mu.Unlock()
		return nil
	})

	counts := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&stats.Orders, func() (int64, error) { return s.OrderRepo.QueryCount(ctx, "") }},
		{&stats.PendingOrders, func() (int64, error) {
			return s.OrderRepo.QueryCount(ctx, "status = ?", models.OrderStatusPending)
		}},
		{&stats.Users, func() (int64, error) { return s.UserRepo.QueryCount(ctx, "") }},
		{&stats.Products, func() (int64, error) { return s.ProductRepo.QueryCount(ctx, "parent_id IS NULL") }},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.count()
			if err != nil {
				return err
			}
			mu.Lock()
			*c.dst = n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
