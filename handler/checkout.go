package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type Checkout struct {
	Config          *config.Config
	CheckoutService service.ICheckoutService
	OrderService    service.IOrderService
}

func (h *Checkout) RegisterRouter(r gin.IRouter) {
	h.routes(r, middleware.RateLimit(middleware.ResCheckoutConfirm))
}

// routes confirm 前的中间件 (限流) 由调用方传入
func (h *Checkout) routes(r gin.IRouter, confirm ...gin.HandlerFunc) {
	checkout := r.Group("/v1/checkout")
	checkout.Use(middleware.Auth(h.Config.Jwt), middleware.RequireRole(models.RoleCustomer))
	checkout.POST("", context.Wrap(h.Start))
	checkout.GET("/:token", context.Wrap(h.Get))
	checkout.POST("/:token/confirm", append(confirm, context.Wrap(h.Confirm))...)
	checkout.GET("/success/:id", context.Wrap(h.Success))
}

func (h *Checkout) Start(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("invalid request body")
	}
	resp, err := h.CheckoutService.Start(c.Request.Context(), uid, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Checkout) Get(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	resp, err := h.CheckoutService.Get(c.Request.Context(), uid, c.Param("token"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

// Confirm 只解码不校验, 过期判断优先于字段校验
func (h *Checkout) Confirm(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ConfirmCheckoutRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return response.BadRequest("invalid request body")
	}
	resp, err := h.CheckoutService.Confirm(c.Request.Context(), uid, c.Param("token"), &req)
	if err != nil {
		return bizError(err)
	}
	if resp.Replayed {
		response.Success(c, resp)
		return nil
	}
	response.Created(c, resp)
	return nil
}

func (h *Checkout) Success(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.OrderService.GetForUser(c.Request.Context(), uid, id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}
