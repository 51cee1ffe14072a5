package handler

import (
	"Storefront/pkg/response"
	"Storefront/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	notFoundErrs = []error{
		service.ErrProductNotFound,
		service.ErrVariantNotFound,
		service.ErrCategoryNotFound,
		service.ErrCartItemNotFound,
		service.ErrOrderNotFound,
		service.ErrUserNotFound,
	}
	conflictErrs = []error{
		service.ErrInsufficientStock,
		service.ErrCancelNotAllowed,
		service.ErrConcurrencyConflict,
		service.ErrCheckoutInProgress,
		service.ErrCategoryHasChildren,
		service.ErrCategoryHasProducts,
		service.ErrProductHasChildren,
		service.ErrProductInUse,
		service.ErrUserHasOrders,
		service.ErrEmailTaken,
	}
	badRequestErrs = []error{
		service.ErrInvalidQuantity,
		service.ErrInvalidStatus,
		service.ErrEmptyCheckout,
		service.ErrCategoryCycle,
		service.ErrInvalidParent,
		service.ErrProductHasVariants,
		service.ErrInvalidPrice,
		service.ErrInvalidImage,
		service.ErrUnsupportedProvider,
		service.ErrRoleRequired,
		service.ErrUnknownRole,
	}
)

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// bizError 将 service 错误转换为对应的 HTTP 状态, 未知错误原样返回由 Wrap 记录并返回 500
func bizError(err error) error {
	var be *response.BizError
	switch {
	case errors.As(err, &be):
		return be
	case errors.Is(err, service.ErrCheckoutExpired):
		return response.NewError(http.StatusGone, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.Unauthorized(service.ErrInvalidCredentials.Error())
	case matches(err, notFoundErrs):
		return response.NotFound(err.Error())
	case matches(err, conflictErrs):
		return response.Conflict(err.Error())
	case matches(err, badRequestErrs):
		return response.BadRequest(err.Error())
	}
	return err
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.BadRequest("invalid " + name)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
