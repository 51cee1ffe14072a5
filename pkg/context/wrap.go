package context

import (
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRoles  = "roles"
)

var ErrUnauthenticated = errors.New("user_id 不存在")

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				status := be.Code
				if status < 400 || status > 599 {
					status = http.StatusOK
				}
				c.JSON(status, response.Response{
					Code:   be.Code,
					Msg:    be.Msg,
					Errors: be.Fields,
				})
				return
			}
			if errors.Is(err, ErrUnauthenticated) {
				response.Fail(c, http.StatusUnauthorized, "unauthenticated")
				return
			}
			log.L.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: http.StatusInternalServerError,
				Msg:  "internal server error",
			})
		}
	}
}

func GetUserID(c *gin.Context) (int64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, ErrUnauthenticated
	}

	uid, ok := v.(int64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

func GetRoles(c *gin.Context) []string {
	v, ok := c.Get(CtxRoles)
	if !ok {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}
