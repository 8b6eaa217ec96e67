package controllers

import (
	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
	"smartrent-http-service/pkg/logger"
)

// InterfaceAuthController defines the authentication controller interface
type InterfaceAuthController interface {
	Register()
	Login()
	FederatedRegister()
	Me()
}

// AuthController handles registration and session issuance
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new authentication controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest is a local-credential landlord registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jane@landlord.com"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FirstName string `json:"first_name" example:"Jane"`
	LastName  string `json:"last_name" example:"Doe"`
	Phone     string `json:"phone" example:"5551234567"`
}

// LoginRequest is an email/password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@landlord.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// ErrorResponse documents the error envelope for swagger
type ErrorResponse struct {
	Status  string      `json:"status" example:"error"`
	Code    int         `json:"code" example:"101001"`
	Message string      `json:"message" example:"invalid or expired credential"`
	Details interface{} `json:"details"`
}

// HandleAuthFunc returns a gin handler dispatching to the auth controller
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "federatedRegister":
			controller.FederatedRegister()
		case "me":
			controller.Me()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Register provisions a landlord account
// @Summary      Register landlord
// @Description  Create a landlord account with local credentials and return a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.RegisterLandlord(services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		failFromService(c.Ctx, "register landlord", err)
		return
	}

	token, err := c.issueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return
	}

	response.Created(c.Ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login exchanges email/password for a session token
// @Summary      Login
// @Description  Verify local credentials and return a session token; the token embeds id and role claims but authorization always re-reads the user record
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login parameters"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		failFromService(c.Ctx, "login", err)
		return
	}

	token, err := c.issueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// FederatedRegister completes the registration hand-off for a verified
// federated identity. Runs behind the identity-only verification mode, the
// single path allowed to operate before a local account exists.
// @Summary      Federated registration
// @Description  Link a verified federated identity to a local account, creating one when none exists, and return a session token
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/federated/register [post]
func (c *AuthController) FederatedRegister() {
	identity := &services.FederatedIdentity{
		Subject: c.Ctx.GetString(middleware.ContextFederatedSubject),
		Email:   c.Ctx.GetString(middleware.ContextFederatedEmail),
		Name:    c.Ctx.GetString(middleware.ContextFederatedName),
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.LinkFederated(identity)
	if err != nil {
		failFromService(c.Ctx, "federated register", err)
		return
	}

	token, err := c.issueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated principal's profile
// @Summary      Current user
// @Description  Return the profile of the authenticated principal
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
func (c *AuthController) Me() {
	principal := middleware.CurrentPrincipal(c.Ctx)
	if principal == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(principal.UserID)
	if err != nil {
		failFromService(c.Ctx, "fetch current user", err)
		return
	}

	response.Success(c.Ctx, user)
}

func (c *AuthController) issueToken(userID, username, role string) (string, error) {
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(userID, username, role)
	if err != nil {
		logger.Error("token generation for user %s failed: %v", userID, err)
		response.ServerError(c.Ctx)
		return "", err
	}
	return token, nil
}
