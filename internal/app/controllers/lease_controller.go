package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
)

// InterfaceLeaseController defines the lease controller interface
type InterfaceLeaseController interface {
	List()
	Create()
	Get()
	UpdateStatus()
}

// LeaseController handles the lease lifecycle
type LeaseController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewLeaseController creates a new lease controller
func NewLeaseController(ctx *gin.Context, container *container.ServiceContainer) *LeaseController {
	return &LeaseController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateLeaseRequest carries lease creation fields. Monetary fields and the
// payment due day accept any JSON scalar and collapse to zero when
// unparseable; the due day is then range-checked server side.
type CreateLeaseRequest struct {
	PropertyID      string      `json:"property_id" example:"b8f4c1de-3a70-4a2f-9a1c-0f6f2f1f9d21"`
	TenantID        string      `json:"tenant_id" binding:"required" example:"7f1a3c55-9a0e-4a49-8312-6a2a8f0f77aa"`
	StartDate       string      `json:"start_date" binding:"required" example:"2026-01-01"`
	EndDate         string      `json:"end_date" binding:"required" example:"2026-12-31"`
	MonthlyRent     interface{} `json:"monthly_rent" swaggertype:"number" example:"1450"`
	SecurityDeposit interface{} `json:"security_deposit" swaggertype:"number" example:"1450"`
	UtilitiesCost   interface{} `json:"utilities_cost" swaggertype:"number" example:"120"`
	PaymentDueDay   interface{} `json:"payment_due_day" swaggertype:"integer" example:"1"`
	Notes           string      `json:"notes" example:"Parking spot included"`
}

// UpdateLeaseStatusRequest carries a lease status transition target
type UpdateLeaseStatusRequest struct {
	Status string `json:"status" binding:"required" example:"active"`
}

// HandleLeaseFunc returns a gin handler dispatching to the lease controller
func HandleLeaseFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLeaseController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "create":
			controller.Create()
		case "get":
			controller.Get()
		case "updateStatus":
			controller.UpdateStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// List lists leases visible to the caller
// @Summary      List leases
// @Description  Landlords see leases on their properties, tenants see their own, admins see all; rows are enriched with property and tenant details
// @Tags         Leases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /leases [get]
func (c *LeaseController) List() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)
	leases, err := leaseService.ListLeases(principal)
	if err != nil {
		failFromService(c.Ctx, "list leases", err)
		return
	}

	response.Success(c.Ctx, leases)
}

// Create creates a pending lease on an owned property
// @Summary      Create lease
// @Description  Create a pending lease binding a scoped tenant to an owned property; the tenant is notified
// @Tags         Leases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateLeaseRequest true "Lease parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /leases [post]
func (c *LeaseController) Create() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreateLeaseRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "start_date must be YYYY-MM-DD", nil)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "end_date must be YYYY-MM-DD", nil)
		return
	}

	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)
	lease, err := leaseService.CreateLease(principal, services.CreateLeaseInput{
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyRent:     coerceFloat(req.MonthlyRent),
		SecurityDeposit: coerceFloat(req.SecurityDeposit),
		UtilitiesCost:   coerceFloat(req.UtilitiesCost),
		PaymentDueDay:   coerceInt(req.PaymentDueDay),
		Notes:           req.Notes,
	})
	if err != nil {
		failFromService(c.Ctx, "create lease", err)
		return
	}

	response.Created(c.Ctx, lease)
}

// Get fetches a lease visible to the caller
// @Summary      Get lease
// @Description  Return a lease the caller is a party to, or any lease for admins
// @Tags         Leases
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Lease ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /leases/{id} [get]
func (c *LeaseController) Get() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)
	lease, err := leaseService.GetLease(principal, c.Ctx.Param("id"))
	if err != nil {
		failFromService(c.Ctx, "get lease", err)
		return
	}

	response.Success(c.Ctx, lease)
}

// UpdateStatus applies an allowed lease status transition
// @Summary      Update lease status
// @Description  Apply a lifecycle transition. Tenants may activate or terminate, landlords may terminate an active lease; expiry is reserved for the scheduler
// @Tags         Leases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Lease ID"
// @Param        request body UpdateLeaseStatusRequest true "Target status"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /leases/{id}/status [patch]
func (c *LeaseController) UpdateStatus() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var req UpdateLeaseStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	leaseService := c.Container.GetService("lease").(services.InterfaceLeaseService)
	lease, err := leaseService.UpdateLeaseStatus(principal, c.Ctx.Param("id"), req.Status)
	if err != nil {
		failFromService(c.Ctx, "update lease status", err)
		return
	}

	response.Success(c.Ctx, lease)
}
