package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BizError Code 即 HTTP 状态码
type BizError struct {
	Code   int
	Msg    string
	Fields map[string]string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// NewValidationError 422, 附带字段级错误信息
func NewValidationError(fields map[string]string) *BizError {
	return &BizError{
		Code:   http.StatusUnprocessableEntity,
		Msg:    "validation failed",
		Fields: fields,
	}
}

func BadRequest(msg string) *BizError   { return NewError(http.StatusBadRequest, msg) }
func NotFound(msg string) *BizError     { return NewError(http.StatusNotFound, msg) }
func Conflict(msg string) *BizError     { return NewError(http.StatusConflict, msg) }
func Unauthorized(msg string) *BizError { return NewError(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *BizError    { return NewError(http.StatusForbidden, msg) }

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
