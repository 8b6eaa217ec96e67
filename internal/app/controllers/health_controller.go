package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/response"
)

// HealthController reports service liveness and dependency status
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler dispatching to the health controller
func HandleHealthFunc(container *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		NewHealthController(ctx, container).Status()
	}
}

// Status reports database connectivity and uptime
// @Summary      Health status
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "up"
	if sqlDB, err := c.Container.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	response.Success(c.Ctx, gin.H{
		"service":  "smartrent-http-service",
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
