package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
)

// InterfaceUserController defines the user controller interface
type InterfaceUserController interface {
	UpdateMe()
	ListTenants()
	CreateTenant()
}

// UserController handles profile and tenant management
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a new user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTenantRequest provisions a tenant under the calling landlord
type CreateTenantRequest struct {
	Email     string `json:"email" binding:"required,email" example:"tom@tenant.com"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FirstName string `json:"first_name" example:"Tom"`
	LastName  string `json:"last_name" example:"Smith"`
	Phone     string `json:"phone" example:"5559876543"`
}

// HandleUserFunc returns a gin handler dispatching to the user controller
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "updateMe":
			controller.UpdateMe()
		case "listTenants":
			controller.ListTenants()
		case "createTenant":
			controller.CreateTenant()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// UpdateMe updates the caller's profile fields
// @Summary      Update profile
// @Description  Update mutable profile fields of the authenticated principal
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body map[string]interface{} true "Profile fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [patch]
func (c *UserController) UpdateMe() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var fields map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&fields); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateProfile(principal.UserID, fields)
	if err != nil {
		failFromService(c.Ctx, "update profile", err)
		return
	}

	response.Success(c.Ctx, user)
}

// ListTenants lists the tenants scoped to the calling landlord
// @Summary      List tenants
// @Description  List tenant accounts belonging to the calling landlord
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/tenants [get]
func (c *UserController) ListTenants() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	tenants, err := userService.ListTenants(principal.UserID)
	if err != nil {
		failFromService(c.Ctx, "list tenants", err)
		return
	}

	response.Success(c.Ctx, tenants)
}

// CreateTenant provisions a tenant account under the calling landlord
// @Summary      Create tenant
// @Description  Create a tenant account scoped to the calling landlord
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTenantRequest true "Tenant parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/tenants [post]
func (c *UserController) CreateTenant() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreateTenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	tenant, err := userService.CreateTenant(principal.UserID, services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		failFromService(c.Ctx, "create tenant", err)
		return
	}

	response.Created(c.Ctx, tenant)
}
