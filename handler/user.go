package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/pkg/validate"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

// User 后台用户管理
type User struct {
	Config      *config.Config
	UserService service.IUserService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	user := r.Group("/v1/admin/users")
	user.Use(middleware.Auth(u.Config.Jwt), middleware.RequireRole(models.RoleAdmin))
	user.GET("", context.Wrap(u.List))
	user.GET("/:id", context.Wrap(u.Get))
	user.POST("", context.Wrap(u.Create))
	user.PUT("/:id", context.Wrap(u.Update))
	user.DELETE("/:id", context.Wrap(u.Delete))
}

func (u *User) List(c *gin.Context) error {
	users, err := u.UserService.List(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, users)
	return nil
}

func (u *User) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := u.UserService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, detail)
	return nil
}

func (u *User) Create(c *gin.Context) error {
	var req types.CreateUserRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	item, err := u.UserService.Create(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Created(c, item)
	return nil
}

func (u *User) Update(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateUserRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	item, err := u.UserService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, item)
	return nil
}

func (u *User) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	if id == uid {
		return response.BadRequest("you cannot delete your own account")
	}
	if err := u.UserService.Delete(c.Request.Context(), id); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}
