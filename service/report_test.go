package service

import (
	"Storefront/dao"
	"Storefront/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-18 是周三, ISO 第 12 周
var reportNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func fixed(decs []decimal.Decimal) []string {
	out := make([]string, len(decs))
	for i, d := range decs {
		out[i] = d.StringFixed(2)
	}
	return out
}

type reportFixture struct {
	*fixture
	svc      *ReportService
	tee, hat *models.Product
}

func newReportFixture(t *testing.T) *reportFixture {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 50, "Red", "M", nil)
	teeBlue := f.product(cat.ID, "Tee", "12.00", 50, "Blue", "M", tee)
	hat := f.product(cat.ID, "Cap", "5.00", 50, "Black", "S", nil)

	at := func(y int, m time.Month, d, h int) time.Time { return time.Date(y, m, d, h, 0, 0, 0, time.UTC) }
	f.order(u.ID, models.OrderStatusDelivered, at(2026, 3, 18, 10), line(tee, 1), line(teeBlue, 2))
	f.order(u.ID, models.OrderStatusDelivered, at(2026, 3, 13, 9), line(hat, 4))
	f.order(u.ID, models.OrderStatusDelivered, at(2026, 3, 1, 12), line(hat, 1))
	f.order(u.ID, models.OrderStatusDelivered, at(2025, 5, 10, 8), line(tee, 1))
	f.order(u.ID, models.OrderStatusPending, at(2026, 3, 18, 11), line(hat, 10))
	f.order(u.ID, models.OrderStatusCancelled, at(2026, 3, 17, 11), line(tee, 5))

	return &reportFixture{
		fixture: f,
		tee:     tee,
		hat:     hat,
		svc: &ReportService{
			OrderRepo:   dao.NewOrder(f.db),
			ProductRepo: dao.NewProduct(f.db),
			UserRepo:    dao.NewUsers(f.db),
			Now:         func() time.Time { return reportNow },
		},
	}
}

func TestWindowLabels(t *testing.T) {
	cases := []struct {
		filter string
		labels []string
	}{
		{FilterDay, []string{"18/03/2026"}},
		{"bogus", []string{"18/03/2026"}},
		{FilterWeek, []string{"12/03", "13/03", "14/03", "15/03", "16/03", "17/03", "18/03"}},
		{FilterMonth, []string{
			"Week 9 (23/02 - 01/03)",
			"Week 10 (02/03 - 08/03)",
			"Week 11 (09/03 - 15/03)",
			"Week 12 (16/03 - 22/03)",
		}},
		{FilterYear, []string{
			"04/2025", "05/2025", "06/2025", "07/2025", "08/2025", "09/2025",
			"10/2025", "11/2025", "12/2025", "01/2026", "02/2026", "03/2026",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			_, _, buckets := window(tc.filter, reportNow)
			labels := make([]string, len(buckets))
			for i, b := range buckets {
				labels[i] = b.label
			}
			assert.Equal(t, tc.labels, labels)
		})
	}
}

func TestWindowMonthOnMonday(t *testing.T) {
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	start, end, buckets := window(FilterMonth, monday)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC), end)
	assert.Len(t, buckets, 4)
}

func TestRevenue(t *testing.T) {
	r := newReportFixture(t)

	cases := []struct {
		filter string
		data   []string
	}{
		{FilterDay, []string{"34.00"}},
		{FilterWeek, []string{"0.00", "20.00", "0.00", "0.00", "0.00", "0.00", "34.00"}},
		{FilterMonth, []string{"5.00", "0.00", "20.00", "34.00"}},
		{FilterYear, []string{
			"0.00", "10.00", "0.00", "0.00", "0.00", "0.00",
			"0.00", "0.00", "0.00", "0.00", "0.00", "59.00",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			chart, err := r.svc.Revenue(r.ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, chart.Labels, len(tc.data))
			assert.Equal(t, tc.data, fixed(chart.Data))
		})
	}
}

func TestTopProductsRollsUpVariants(t *testing.T) {
	r := newReportFixture(t)

	top, err := r.svc.TopProducts(r.ctx, FilterDay)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, r.tee.ID, top[0].ProductID)
	assert.Equal(t, int64(3), top[0].TotalSold)

	top, err = r.svc.TopProducts(r.ctx, FilterYear)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, r.hat.ID, top[0].ProductID)
	assert.Equal(t, "Cap", top[0].ProductName)
	assert.Equal(t, int64(5), top[0].TotalSold)
	assert.Equal(t, r.tee.ID, top[1].ProductID)
	assert.Equal(t, int64(4), top[1].TotalSold)
}

func TestDashboard(t *testing.T) {
	r := newReportFixture(t)

	stats, err := r.svc.Dashboard(r.ctx)
	require.NoError(t, err)
	assert.Equal(t, "69.00", stats.Revenue.StringFixed(2))
	assert.Equal(t, int64(4), stats.DeliveredOrders)
	assert.Equal(t, int64(6), stats.Orders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(2), stats.Products)
}
