package service

import (
	"Storefront/dao"
	"Storefront/models"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) cartService() *CartService {
	return &CartService{DB: f.db, CartRepo: dao.NewCart(f.db), ProductRepo: dao.NewProduct(f.db)}
}

func TestCartAddMergesLines(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)
	hat := f.product(cat.ID, "Hat", "5.00", 1, "Black", "S", nil)
	svc := f.cartService()

	n, err := svc.Add(f.ctx, u.ID, tee.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.Add(f.ctx, u.ID, tee.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// 合并后的数量超过库存
	_, err = svc.Add(f.ctx, u.ID, tee.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.EqualError(t, err, "only 5 left in stock")

	n, err = svc.Add(f.ctx, u.ID, hat.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var item models.CartItem
	require.NoError(t, f.db.Where("user_id = ? AND product_id = ?", u.ID, tee.ID).First(&item).Error)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, "Red", item.Color)
	assert.Equal(t, "M", item.Size)
}

func TestCartAddRejects(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)
	svc := f.cartService()

	_, err := svc.Add(f.ctx, u.ID, tee.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Add(f.ctx, u.ID, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	count, err := svc.Count(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartAddQuantityOverflow(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)
	bulk := f.product(cat.ID, "Socks", "1.00", 5000, "White", "M", nil)
	svc := f.cartService()

	_, err := svc.Add(f.ctx, u.ID, tee.ID, 1)
	require.NoError(t, err)

	_, err = svc.Add(f.ctx, u.ID, tee.ID, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// 刚好超出剩余可加数量
	_, err = svc.Add(f.ctx, u.ID, tee.ID, 5)
	assert.EqualError(t, err, "only 5 left in stock")

	_, err = svc.Add(f.ctx, u.ID, bulk.ID, 998)
	require.NoError(t, err)
	_, err = svc.Add(f.ctx, u.ID, bulk.ID, 2)
	assert.EqualError(t, err, "at most 999 can be ordered")

	var items []models.CartItem
	require.NoError(t, f.db.Where("user_id = ?", u.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 998, items[1].Quantity)
	assert.Equal(t, 5, f.stock(tee.ID))
}

func TestCartUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	other := f.user("b@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)
	svc := f.cartService()

	_, err := svc.Add(f.ctx, u.ID, tee.ID, 1)
	require.NoError(t, err)
	view, err := svc.View(f.ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	id := view.Items[0].ID

	err = svc.UpdateQuantity(f.ctx, u.ID, id, 6)
	assert.EqualError(t, err, "at most 5 can be ordered")

	err = svc.UpdateQuantity(f.ctx, u.ID, id, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = svc.UpdateQuantity(f.ctx, other.ID, id, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	require.NoError(t, svc.UpdateQuantity(f.ctx, u.ID, id, 3))
	view, err = svc.View(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Quantity)
}

func TestCartViewKeepsPriceSnapshot(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)
	hat := f.product(cat.ID, "Hat", "5.50", 2, "Black", "S", nil)
	svc := f.cartService()

	_, err := svc.Add(f.ctx, u.ID, tee.ID, 3)
	require.NoError(t, err)
	_, err = svc.Add(f.ctx, u.ID, hat.ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", tee.ID).
		Update("price", decimal.RequireFromString("99.00")).Error)

	view, err := svc.View(f.ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "Tee", view.Items[0].ProductName)
	assert.Equal(t, "Shirts", view.Items[0].CategoryName)
	assert.Equal(t, "30.00", view.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "35.50", view.TotalAmount.StringFixed(2))
}

func TestCartRemove(t *testing.T) {
	f := newFixture(t)
	cat := f.category("Shirts")
	u := f.user("a@example.com")
	other := f.user("b@example.com")
	tee := f.product(cat.ID, "Tee", "10.00", 5, "Red", "M", nil)
	svc := f.cartService()

	_, err := svc.Add(f.ctx, u.ID, tee.ID, 1)
	require.NoError(t, err)
	view, err := svc.View(f.ctx, u.ID)
	require.NoError(t, err)
	id := view.Items[0].ID

	assert.ErrorIs(t, svc.Remove(f.ctx, other.ID, id), ErrCartItemNotFound)
	require.NoError(t, svc.Remove(f.ctx, u.ID, id))
	assert.ErrorIs(t, svc.Remove(f.ctx, u.ID, id), ErrCartItemNotFound)

	count, err := svc.Count(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
