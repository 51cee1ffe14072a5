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

type Category struct {
	Config          *config.Config
	CategoryService service.ICategoryService
}

func (h *Category) RegisterRouter(r gin.IRouter) {
	category := r.Group("/v1/admin/categories")
	category.Use(middleware.Auth(h.Config.Jwt), middleware.RequireRole(models.RoleAdmin))
	category.GET("", context.Wrap(h.List))
	category.GET("/options", context.Wrap(h.Options))
	category.GET("/:id", context.Wrap(h.Get))
	category.POST("", context.Wrap(h.Create))
	category.PUT("/:id", context.Wrap(h.Update))
	category.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Category) List(c *gin.Context) error {
	items, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, items)
	return nil
}

// Options ?exclude_id= 编辑时排除自身
func (h *Category) Options(c *gin.Context) error {
	opts, err := h.CategoryService.ParentOptions(c.Request.Context(), int64(queryInt(c, "exclude_id", 0)))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, opts)
	return nil
}

func (h *Category) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.CategoryService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, item)
	return nil
}

func (h *Category) Create(c *gin.Context) error {
	var req types.CategoryRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	item, err := h.CategoryService.Create(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Created(c, item)
	return nil
}

func (h *Category) Update(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.CategoryRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	item, err := h.CategoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, item)
	return nil
}

func (h *Category) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}
