package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
)

// DashboardController serves aggregate counts for the caller's scope
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc returns a gin handler dispatching to the dashboard controller
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "stats":
			controller.Stats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Stats returns property, lease and maintenance counts for the caller
// @Summary      Dashboard stats
// @Description  Aggregate counts scoped to the caller; admins see global figures. Served from cache for up to a minute
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /dashboard/stats [get]
func (c *DashboardController) Stats() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	stats, err := dashboardService.Stats(principal)
	if err != nil {
		failFromService(c.Ctx, "dashboard stats", err)
		return
	}

	response.Success(c.Ctx, stats)
}
