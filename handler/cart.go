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

type Cart struct {
	Config      *config.Config
	CartService service.ICartService
}

func (h *Cart) RegisterRouter(r gin.IRouter) {
	cart := r.Group("/v1/cart")
	cart.Use(middleware.Auth(h.Config.Jwt), middleware.RequireRole(models.RoleCustomer))
	cart.GET("", context.Wrap(h.View))
	cart.GET("/count", context.Wrap(h.Count))
	cart.POST("/items", context.Wrap(h.Add))
	cart.PUT("/items/:id", context.Wrap(h.Update))
	cart.DELETE("/items/:id", context.Wrap(h.Remove))
}

func (h *Cart) View(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	view, err := h.CartService.View(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) Count(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	n, err := h.CartService.Count(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.CartCount{Count: n})
	return nil
}

func (h *Cart) Add(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.AddCartItemRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	n, err := h.CartService.Add(c.Request.Context(), uid, req.ProductID, qty)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.CartCount{Count: n})
	return nil
}

func (h *Cart) Update(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateCartItemRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	if err := h.CartService.UpdateQuantity(c.Request.Context(), uid, id, req.Quantity); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) Remove(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CartService.Remove(c.Request.Context(), uid, id); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}
