package service

import (
	"Storefront/dao/cache"
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCancelNotAllowed    = errors.New("order can no longer be cancelled")
	ErrConcurrencyConflict = errors.New("order was modified concurrently")
	ErrInvalidStatus       = errors.New("invalid order status")

	ErrCheckoutExpired    = cache.ErrCheckoutNotFound
	ErrCheckoutInProgress = cache.ErrCheckoutLocked
	ErrEmptyCheckout      = errors.New("please select at least one product to checkout")
	ErrInvalidQuantity    = errors.New("invalid quantity")

	ErrCategoryCycle       = errors.New("a category cannot be its own ancestor")
	ErrCategoryHasChildren = errors.New("category still has child categories")
	ErrCategoryHasProducts = errors.New("category still has products")
	ErrInvalidParent       = errors.New("parent product must be a base product")
	ErrProductHasVariants  = errors.New("a product with variants cannot become a variant")
	ErrInvalidPrice        = errors.New("price must be greater than or equal to 0")
	ErrProductInUse        = errors.New("product has been ordered and cannot be deleted")
	ErrProductHasChildren  = errors.New("product still has variants")
	ErrUserHasOrders       = errors.New("user has orders and cannot be deleted")
	ErrRoleRequired        = errors.New("a user must keep at least one role")
	ErrUnknownRole         = errors.New("unknown role")

	ErrEmailTaken          = errors.New("email is already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnsupportedProvider = errors.New("unsupported login provider")
	ErrInvalidImage        = errors.New("invalid image")
)

// StockError 库存不足, 携带商品信息用于提示
type StockError struct {
	ProductID   int64
	ProductName string
	Color       string
	Size        string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product '%s' (color: %s, size: %s) does not have enough stock (requested %d, only %d left)",
		e.ProductName, e.Color, e.Size, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// QuantityError 数量非法, Msg 直接展示给用户
type QuantityError struct {
	Msg string
}

func (e *QuantityError) Error() string {
	return e.Msg
}

func (e *QuantityError) Unwrap() error {
	return ErrInvalidQuantity
}
