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
	"strconv"

	"github.com/gin-gonic/gin"
)

// Order 顾客订单
type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	order := r.Group("/v1/orders")
	order.Use(middleware.Auth(o.Config.Jwt), middleware.RequireRole(models.RoleCustomer))
	order.GET("", context.Wrap(o.List))
	order.GET("/:id", context.Wrap(o.Detail))
	order.POST("/:id/cancel", context.Wrap(o.Cancel))
}

func (o *Order) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	orders, err := o.OrderService.ListForUser(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, orders)
	return nil
}

func (o *Order) Detail(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := o.OrderService.GetForUser(c.Request.Context(), uid, id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, detail)
	return nil
}

func (o *Order) Cancel(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := o.OrderService.Cancel(c.Request.Context(), uid, id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}

// AdminOrder 后台订单管理
type AdminOrder struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (o *AdminOrder) RegisterRouter(r gin.IRouter) {
	order := r.Group("/v1/admin/orders")
	order.Use(middleware.Auth(o.Config.Jwt), middleware.RequireRole(models.RoleAdmin))
	order.GET("", context.Wrap(o.List))
	order.GET("/statuses", context.Wrap(o.Statuses))
	order.GET("/:id", context.Wrap(o.Detail))
	order.POST("/:id/status", context.Wrap(o.UpdateStatus))
}

func (o *AdminOrder) List(c *gin.Context) error {
	var status *models.OrderStatus
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return response.BadRequest("invalid status")
		}
		s, err := models.ParseOrderStatus(n)
		if err != nil {
			return bizError(service.ErrInvalidStatus)
		}
		status = &s
	}
	resp, err := o.OrderService.ListAll(c.Request.Context(), status, queryInt(c, "page", 1), queryInt(c, "page_size", 0))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (o *AdminOrder) Statuses(c *gin.Context) error {
	response.Success(c, o.OrderService.StatusOptions())
	return nil
}

func (o *AdminOrder) Detail(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := o.OrderService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, detail)
	return nil
}

func (o *AdminOrder) UpdateStatus(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateOrderStatusRequest
	if err := validate.Bind(c, &req); err != nil {
		return err
	}
	to, err := models.ParseOrderStatus(*req.Status)
	if err != nil {
		return bizError(service.ErrInvalidStatus)
	}
	order, err := o.OrderService.UpdateStatus(c.Request.Context(), uid, id, to)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}
