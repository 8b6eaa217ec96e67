package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
)

// InterfaceMaintenanceController defines the maintenance controller interface
type InterfaceMaintenanceController interface {
	List()
	Create()
	UpdateStatus()
}

// MaintenanceController handles maintenance requests
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController creates a new maintenance controller
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateMaintenanceRequestBody files a maintenance request against a property
type CreateMaintenanceRequestBody struct {
	PropertyID  string `json:"property_id" binding:"required" example:"b8f4c1de-3a70-4a2f-9a1c-0f6f2f1f9d21"`
	Title       string `json:"title" binding:"required" example:"Leaking faucet"`
	Description string `json:"description" example:"Kitchen faucet drips constantly"`
	Priority    string `json:"priority" example:"medium"`
}

// UpdateMaintenanceStatusRequest carries a maintenance status transition target
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
}

// HandleMaintenanceFunc returns a gin handler dispatching to the maintenance controller
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "create":
			controller.Create()
		case "updateStatus":
			controller.UpdateStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// List lists maintenance requests visible to the caller
// @Summary      List maintenance requests
// @Description  Tenants see their own requests, landlords see requests on their properties, admins see all
// @Tags         Maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /maintenance [get]
func (c *MaintenanceController) List() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	requests, err := maintenanceService.ListRequests(principal)
	if err != nil {
		failFromService(c.Ctx, "list maintenance requests", err)
		return
	}

	response.Success(c.Ctx, requests)
}

// Create files a maintenance request as the calling tenant
// @Summary      Create maintenance request
// @Description  File a maintenance request against a property managed by the tenant's landlord; the landlord is notified
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateMaintenanceRequestBody true "Request parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance [post]
func (c *MaintenanceController) Create() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreateMaintenanceRequestBody
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.CreateRequest(principal, services.CreateMaintenanceInput{
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		failFromService(c.Ctx, "create maintenance request", err)
		return
	}

	response.Created(c.Ctx, request)
}

// UpdateStatus applies an allowed maintenance status transition
// @Summary      Update maintenance status
// @Description  Landlords progress or complete open requests, tenants may cancel their own open requests; the counterparty is notified
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Maintenance request ID"
// @Param        request body UpdateMaintenanceStatusRequest true "Target status"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/{id}/status [patch]
func (c *MaintenanceController) UpdateStatus() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var req UpdateMaintenanceStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.UpdateStatus(principal, c.Ctx.Param("id"), req.Status)
	if err != nil {
		failFromService(c.Ctx, "update maintenance status", err)
		return
	}

	response.Success(c.Ctx, request)
}
