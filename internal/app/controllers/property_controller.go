package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
)

// InterfacePropertyController defines the property controller interface
type InterfacePropertyController interface {
	List()
	Create()
	Get()
	Update()
	Delete()
}

// PropertyController handles property CRUD for landlords and tenants
type PropertyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPropertyController creates a new property controller
func NewPropertyController(ctx *gin.Context, container *container.ServiceContainer) *PropertyController {
	return &PropertyController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreatePropertyRequest carries the mutable property fields. Numeric fields
// accept any JSON scalar and collapse to zero when unparseable.
type CreatePropertyRequest struct {
	Title       string      `json:"title" binding:"required" example:"Sunny 2BR Apartment"`
	Address     string      `json:"address" binding:"required" example:"12 Main St"`
	City        string      `json:"city" example:"Springfield"`
	State       string      `json:"state" example:"IL"`
	ZipCode     string      `json:"zip_code" example:"62704"`
	Type        string      `json:"type" example:"apartment"`
	Bedrooms    interface{} `json:"bedrooms" swaggertype:"integer" example:"2"`
	Bathrooms   interface{} `json:"bathrooms" swaggertype:"integer" example:"1"`
	MonthlyRent interface{} `json:"monthly_rent" swaggertype:"number" example:"1450"`
}

// HandlePropertyFunc returns a gin handler dispatching to the property controller
func HandlePropertyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPropertyController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "create":
			controller.Create()
		case "get":
			controller.Get()
		case "update":
			controller.Update()
		case "delete":
			controller.Delete()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// List lists properties visible to the caller
// @Summary      List properties
// @Description  Landlords see their own properties, tenants see their landlord's, admins see all
// @Tags         Properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /properties [get]
func (c *PropertyController) List() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	properties, err := propertyService.ListProperties(principal)
	if err != nil {
		failFromService(c.Ctx, "list properties", err)
		return
	}

	response.Success(c.Ctx, properties)
}

// Create registers a new property owned by the calling landlord
// @Summary      Create property
// @Description  Register a property owned by the calling landlord, status defaults to available
// @Tags         Properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePropertyRequest true "Property parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /properties [post]
func (c *PropertyController) Create() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreatePropertyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	property := &models.Property{
		Title:       req.Title,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Type:        req.Type,
		Bedrooms:    coerceInt(req.Bedrooms),
		Bathrooms:   coerceInt(req.Bathrooms),
		MonthlyRent: coerceFloat(req.MonthlyRent),
	}

	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	if err := propertyService.CreateProperty(principal.UserID, property); err != nil {
		failFromService(c.Ctx, "create property", err)
		return
	}

	response.Created(c.Ctx, property)
}

// Get fetches a single property by id
// @Summary      Get property
// @Tags         Properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /properties/{id} [get]
func (c *PropertyController) Get() {
	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	property, err := propertyService.GetPropertyByID(c.Ctx.Param("id"))
	if err != nil {
		failFromService(c.Ctx, "get property", err)
		return
	}

	response.Success(c.Ctx, property)
}

// Update patches mutable fields of an owned property
// @Summary      Update property
// @Description  Update mutable fields of a property owned by the caller; ownership cannot be reassigned
// @Tags         Properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body map[string]interface{} true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /properties/{id} [patch]
func (c *PropertyController) Update() {
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

	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	property, err := propertyService.UpdateProperty(principal.UserID, c.Ctx.Param("id"), fields)
	if err != nil {
		failFromService(c.Ctx, "update property", err)
		return
	}

	response.Success(c.Ctx, property)
}

// Delete removes an owned property with no pending or active lease
// @Summary      Delete property
// @Description  Delete a property owned by the caller; rejected while a pending or active lease references it
// @Tags         Properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /properties/{id} [delete]
func (c *PropertyController) Delete() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	propertyService := c.Container.GetService("property").(services.InterfacePropertyService)
	if err := propertyService.DeleteProperty(principal.UserID, c.Ctx.Param("id")); err != nil {
		failFromService(c.Ctx, "delete property", err)
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": true})
}
