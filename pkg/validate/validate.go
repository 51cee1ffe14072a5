package validate

import (
	"Storefront/pkg/response"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9(][0-9 ().-]{6,18}[0-9]$`)
	once    sync.Once
)

// Phone 宽松的电话号码格式: 可带 +, 允许空格 括号 点 横线
func Phone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// Register 向 gin 的 validator 注册自定义规则, 字段名使用 json tag
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return Phone(fl.Field().String())
		})
	})
}

// Bind 绑定 JSON 请求体, 校验失败返回 422
func Bind(c *gin.Context, obj any) error {
	Register()
	if err := c.ShouldBindJSON(obj); err != nil {
		return Translate(err)
	}
	return nil
}

// BindQuery 绑定 query 参数
func BindQuery(c *gin.Context, obj any) error {
	Register()
	if err := c.ShouldBindQuery(obj); err != nil {
		return Translate(err)
	}
	return nil
}

func Translate(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return response.BadRequest("invalid request body")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = message(fe)
	}
	return response.NewValidationError(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "phone":
		return "invalid phone number"
	case "email":
		return "invalid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Struct 校验已解码的结构体
func Struct(obj any) error {
	Register()
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return Translate(err)
	}
	return nil
}
