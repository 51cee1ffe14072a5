package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 事务内外共用一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return rds, mr
}

func testConfig() *config.Config {
	conf, err := config.Parse([]byte(`
app:
  hash_salt: test-salt
jwt:
  secret: test-secret
checkout:
  ttl: 60
`))
	if err != nil {
		panic(err)
	}
	return conf
}

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, ctx: context.Background(), db: newTestDB(t)}
}

func (f *fixture) category(name string) *models.Category {
	c := &models.Category{Name: name}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f *fixture) user(email string) *models.User {
	u := &models.User{Email: email}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *fixture) product(categoryID int64, name, price string, stock int, color, size string, parent *models.Product) *models.Product {
	p := &models.Product{
		Name:          name,
		CategoryID:    categoryID,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Color:         color,
		Size:          size,
		Description:   name,
		ImageURL:      "https://img.example.com/" + strings.ToLower(name) + ".jpg",
	}
	if parent != nil {
		id := parent.ID
		p.ParentID = &id
	}
	require.NoError(f.t, f.db.Create(p).Error)
	return p
}

func (f *fixture) stock(id int64) int {
	var p models.Product
	require.NoError(f.t, f.db.First(&p, id).Error)
	return p.StockQuantity
}

// order 直接落库, 不扣库存
func (f *fixture) order(userID int64, status models.OrderStatus, at time.Time, lines ...models.OrderDetail) *models.Order {
	o := &models.Order{
		UserID:          userID,
		Status:          status,
		ShippingAddress: "1 Main St",
		Phone:           "0901234567",
		PaymentMethod:   models.PaymentMethodCOD,
		OrderDate:       at.UTC(),
		Version:         1,
		Details:         lines,
	}
	o.TotalAmount = o.ComputeTotal()
	require.NoError(f.t, f.db.Create(o).Error)
	return o
}

func line(p *models.Product, qty int) models.OrderDetail {
	return models.OrderDetail{ProductID: p.ID, Quantity: qty, UnitPrice: p.Price}
}

func (f *fixture) orderService(events IOrderEvents) *OrderService {
	return &OrderService{
		DB:          f.db,
		OrderRepo:   dao.NewOrder(f.db),
		ProductRepo: dao.NewProduct(f.db),
		Events:      events,
	}
}

func (f *fixture) checkoutService(rds *redis.Client, events IOrderEvents) *CheckoutService {
	return &CheckoutService{
		DB:          f.db,
		Config:      testConfig(),
		ProductRepo: dao.NewProduct(f.db),
		CartRepo:    dao.NewCart(f.db),
		OrderRepo:   dao.NewOrder(f.db),
		Storage:     cache.NewCheckoutStorage(rds),
		Events:      events,
	}
}

// recordingEvents 记录发布的订单事件
type recordingEvents struct {
	mu      sync.Mutex
	placed  []int64
	changes []models.OrderStatus
}

func (r *recordingEvents) OrderPlaced(_ context.Context, order *models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed = append(r.placed, order.ID)
}

func (r *recordingEvents) StatusChanged(_ context.Context, order *models.Order, _ models.OrderStatus, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, order.Status)
}
