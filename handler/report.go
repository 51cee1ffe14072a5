package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"

	"github.com/gin-gonic/gin"
)

type Report struct {
	Config        *config.Config
	ReportService service.IReportService
}

func (h *Report) RegisterRouter(r gin.IRouter) {
	admin := r.Group("/v1/admin")
	admin.Use(middleware.Auth(h.Config.Jwt), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard", context.Wrap(h.Dashboard))
	admin.GET("/reports/revenue", context.Wrap(h.Revenue))
	admin.GET("/reports/top-products", context.Wrap(h.TopProducts))
}

func (h *Report) Dashboard(c *gin.Context) error {
	stats, err := h.ReportService.Dashboard(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, stats)
	return nil
}

// Revenue filter: day | week | month | year, 其他值按 day
func (h *Report) Revenue(c *gin.Context) error {
	chart, err := h.ReportService.Revenue(c.Request.Context(), c.DefaultQuery("filter", service.FilterDay))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, chart)
	return nil
}

func (h *Report) TopProducts(c *gin.Context) error {
	items, err := h.ReportService.TopProducts(c.Request.Context(), c.DefaultQuery("filter", service.FilterDay))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, items)
	return nil
}
