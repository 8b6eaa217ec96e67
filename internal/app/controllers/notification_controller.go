package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
)

// InterfaceNotificationController defines the notification controller interface
type InterfaceNotificationController interface {
	List()
	MarkRead()
}

// NotificationController serves per-user notifications
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController creates a new notification controller
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleNotificationFunc returns a gin handler dispatching to the notification controller
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "markRead":
			controller.MarkRead()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// List returns the caller's notifications, newest first
// @Summary      List notifications
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
func (c *NotificationController) List() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notifications, err := notificationService.ListForUser(principal.UserID)
	if err != nil {
		failFromService(c.Ctx, "list notifications", err)
		return
	}

	response.Success(c.Ctx, notifications)
}

// MarkRead marks one of the caller's notifications as read
// @Summary      Mark notification read
// @Description  Mark a notification belonging to the caller as read; other users' notifications report not found
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notification, err := notificationService.MarkRead(principal.UserID, c.Ctx.Param("id"))
	if err != nil {
		failFromService(c.Ctx, "mark notification read", err)
		return
	}

	response.Success(c.Ctx, notification)
}
