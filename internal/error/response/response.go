package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/error/code"
)

// SuccessBody is the envelope for successful responses
type SuccessBody struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorBody is the envelope for failed responses
type ErrorBody struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes a success response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessBody{
		Status: "success",
		Data:   data,
	})
}

// Created writes a success response for a newly created resource
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessBody{
		Status: "success",
		Data:   data,
	})
}

// Fail writes an error response using the code table message
func Fail(c *gin.Context, errorCode int, details interface{}) {
	c.JSON(code.GetStatus(errorCode), ErrorBody{
		Status:  "error",
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Details: details,
	})
}

// FailWithMessage writes an error response with a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string, details interface{}) {
	c.JSON(code.GetStatus(errorCode), ErrorBody{
		Status:  "error",
		Code:    errorCode,
		Message: message,
		Details: details,
	})
}

// ParamError writes a validation failure response
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError writes a generic server error response. Internal detail is
// logged at the call site and never sent to the client.
func ServerError(c *gin.Context) {
	Fail(c, code.ErrDatabase, nil)
}

// NotFound writes a not-found response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	FailWithMessage(c, code.ErrUserNotFound, message, nil)
}

// Unauthorized writes an invalid-credential response
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrCredentialInvalid, nil)
}

// Forbidden writes a permission-denied response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		FailWithMessage(c, code.ErrPermissionDenied, code.GetMessage(code.ErrPermissionDenied), nil)
		return
	}
	FailWithMessage(c, code.ErrPermissionDenied, message, nil)
}
