package validate

import (
	"Storefront/pkg/response"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	for _, ok := range []string{"0901234567", "+84 901 234 567", "(028) 3822-1234"} {
		assert.True(t, Phone(ok), ok)
	}
	for _, bad := range []string{"", "abc", "12", "+84-90x-234", "0901234567890123456789"} {
		assert.False(t, Phone(bad), bad)
	}
}

type form struct {
	Address string `json:"shipping_address" binding:"required"`
	Phone   string `json:"phone" binding:"required,phone"`
}

func TestBindFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var f form
	err := Bind(c, &f)
	require.Error(t, err)

	var be *response.BizError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusUnprocessableEntity, be.Code)
	assert.Equal(t, "shipping_address is required", be.Fields["shipping_address"])
	assert.Equal(t, "invalid phone number", be.Fields["phone"])
}

func TestBindMalformed(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var f form
	err := Bind(c, &f)
	var be *response.BizError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusBadRequest, be.Code)
}

type listQuery struct {
	CategoryID int64 `json:"category_id" form:"category_id" binding:"omitempty,gte=0"`
}

func TestBindQuery(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?category_id=7", nil)
	var q listQuery
	require.NoError(t, BindQuery(c, &q))
	assert.Equal(t, int64(7), q.CategoryID)

	c.Request = httptest.NewRequest(http.MethodGet, "/?category_id=-1", nil)
	err := BindQuery(c, &listQuery{})
	var be *response.BizError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusUnprocessableEntity, be.Code)
	assert.Equal(t, "category_id must be greater than or equal to 0", be.Fields["category_id"])

	c.Request = httptest.NewRequest(http.MethodGet, "/?category_id=abc", nil)
	err = BindQuery(c, &listQuery{})
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusBadRequest, be.Code)
}
