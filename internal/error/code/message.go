package code

// Error code to message mapping
var codeMessageMap = map[int]string{
	// Generic
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request body",
	ErrValidation:      "request validation failed",
	ErrTooManyRequests: "too many requests",
	ErrDatabase:        "storage unavailable",

	// Authentication
	ErrMissingCredential:     "authorization header is required",
	ErrCredentialInvalid:     "invalid or expired credential",
	ErrUnregisteredPrincipal: "no account exists for this identity, please complete registration",
	ErrPermissionDenied:      "insufficient permissions",
	ErrPasswordIncorrect:     "invalid email or password",

	// User
	ErrUserNotFound:     "user not found",
	ErrUserAlreadyExist: "email already registered",
	ErrNotATenant:       "selected user is not a tenant",

	// Property
	ErrPropertyNotFound: "property not found",
	ErrPropertyLeased:   "property has a pending or active lease",

	// Lease
	ErrLeaseNotFound:     "lease not found",
	ErrInvalidTransition: "lease status transition not allowed",

	// Maintenance
	ErrMaintenanceNotFound: "maintenance request not found",

	// Notification
	ErrNotificationNotFound: "notification not found",
}

// Error code to HTTP status mapping
var codeStatusMap = map[int]int{
	// Generic
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrDatabase:        StatusInternalServerError,

	// Authentication
	ErrMissingCredential:     StatusUnauthorized,
	ErrCredentialInvalid:     StatusUnauthorized,
	ErrUnregisteredPrincipal: StatusNotFound,
	ErrPermissionDenied:      StatusForbidden,
	ErrPasswordIncorrect:     StatusUnauthorized,

	// User
	ErrUserNotFound:     StatusNotFound,
	ErrUserAlreadyExist: StatusBadRequest,
	ErrNotATenant:       StatusBadRequest,

	// Property
	ErrPropertyNotFound: StatusNotFound,
	ErrPropertyLeased:   StatusBadRequest,

	// Lease
	ErrLeaseNotFound:     StatusNotFound,
	ErrInvalidTransition: StatusBadRequest,

	// Maintenance
	ErrMaintenanceNotFound: StatusNotFound,

	// Notification
	ErrNotificationNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
