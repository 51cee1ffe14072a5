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

// ProductHandler 后台商品管理
type ProductHandler struct {
	Config         *config.Config
	ProductService service.IProductService
	ImageService   service.IImageService
}

func (p *ProductHandler) RegisterRouter(r gin.IRouter) {
	products := r.Group("/v1/admin/products")
	products.Use(middleware.Auth(p.Config.Jwt), middleware.RequireRole(models.RoleAdmin))
	products.GET("", context.Wrap(p.List))
	products.GET("/options", context.Wrap(p.Options))
	products.GET("/:id", context.Wrap(p.Get))
	products.POST("", context.Wrap(p.Create))
	products.PUT("/:id", context.Wrap(p.Update))
	products.DELETE("/:id", context.Wrap(p.Delete))
	products.POST("/:id/images", context.Wrap(p.UploadImage)) // 上传商品图片
}

func (p *ProductHandler) List(c *gin.Context) error {
	page, err := p.ProductService.List(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "page_size", 0))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, page)
	return nil
}

func (p *ProductHandler) Options(c *gin.Context) error {
	opts, err := p.ProductService.FormOptions(c.Request.Context(), int64(queryInt(c, "exclude_id", 0)))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, opts)
	return nil
}

func (p *ProductHandler) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := p.ProductService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, product)
	return nil
}

func (p *ProductHandler) Create(c *gin.Context) error {
	var req types.ProductRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	product, err := p.ProductService.Create(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Created(c, product)
	return nil
}

func (p *ProductHandler) Update(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.ProductRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	product, err := p.ProductService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, product)
	return nil
}

func (p *ProductHandler) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := p.ProductService.Delete(c.Request.Context(), id); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (p *ProductHandler) UploadImage(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	header, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest("image file is required")
	}
	resp, err := p.ImageService.UploadImage(c.Request.Context(), id, header)
	if err != nil {
		return bizError(err)
	}
	response.Created(c, resp)
	return nil
}
