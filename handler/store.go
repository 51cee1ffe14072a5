package handler

import (
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/pkg/validate"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

// Store 前台商品浏览, 无需登录
type Store struct {
	CatalogService service.ICatalogService
}

func (s *Store) RegisterRouter(r gin.IRouter) {
	store := r.Group("/v1/store")
	store.GET("/home", context.Wrap(s.Home))
	store.GET("/products", context.Wrap(s.Products))
	store.GET("/products/:id", context.Wrap(s.Detail))
	store.GET("/products/:id/variant", context.Wrap(s.Variant))
	store.GET("/search", context.Wrap(s.Search))
	store.GET("/suggest", context.Wrap(s.Suggest))
}

func (s *Store) Home(c *gin.Context) error {
	resp, err := s.CatalogService.Home(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (s *Store) Products(c *gin.Context) error {
	var query types.ProductListQuery
	if err := validate.BindQuery(c, &query); err != nil {
		return err
	}
	resp, err := s.CatalogService.ListProducts(c.Request.Context(), query.CategoryID)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (s *Store) Detail(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := s.CatalogService.Detail(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (s *Store) Variant(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := s.CatalogService.Variant(c.Request.Context(), id, c.Query("color"), c.Query("size"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (s *Store) Search(c *gin.Context) error {
	resp, err := s.CatalogService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (s *Store) Suggest(c *gin.Context) error {
	names, err := s.CatalogService.Suggest(c.Request.Context(), c.Query("q"), queryInt(c, "limit", 0))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, names)
	return nil
}
