package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: malformed or invalid request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: missing or invalid credential.
	StatusUnauthorized = 401
	// StatusForbidden - 403: authenticated but not allowed.
	StatusForbidden = 403
	// StatusNotFound - 404: resource does not exist.
	StatusNotFound = 404
	// StatusInternalServerError - 500: server-side failure.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: rate limited.
	StatusTooManyRequests = 429
)

// Generic error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
	// ErrDatabase - 500: backing store error.
	ErrDatabase
)

// Authentication error codes (101xxx).
const (
	// ErrMissingCredential - 401: no bearer credential supplied.
	ErrMissingCredential int = iota + 101000
	// ErrCredentialInvalid - 401: credential failed signature or expiry checks.
	ErrCredentialInvalid
	// ErrUnregisteredPrincipal - 404: verified identity has no local account.
	ErrUnregisteredPrincipal
	// ErrPermissionDenied - 403: role or ownership check failed.
	ErrPermissionDenied
	// ErrPasswordIncorrect - 401: email/password pair rejected.
	ErrPasswordIncorrect
)

// User error codes (102xxx).
const (
	// ErrUserNotFound - 404: user does not exist.
	ErrUserNotFound int = iota + 102000
	// ErrUserAlreadyExist - 400: email already registered.
	ErrUserAlreadyExist
	// ErrNotATenant - 400: referenced user does not have the tenant role.
	ErrNotATenant
)

// Property error codes (103xxx).
const (
	// ErrPropertyNotFound - 404: property does not exist.
	ErrPropertyNotFound int = iota + 103000
	// ErrPropertyLeased - 400: property still referenced by a pending or active lease.
	ErrPropertyLeased
)

// Lease error codes (104xxx).
const (
	// ErrLeaseNotFound - 404: lease does not exist.
	ErrLeaseNotFound int = iota + 104000
	// ErrInvalidTransition - 400: requested lease status change is not a legal edge.
	ErrInvalidTransition
)

// Maintenance error codes (105xxx).
const (
	// ErrMaintenanceNotFound - 404: maintenance request does not exist.
	ErrMaintenanceNotFound int = iota + 105000
)

// Notification error codes (106xxx).
const (
	// ErrNotificationNotFound - 404: notification does not exist.
	ErrNotificationNotFound int = iota + 106000
)
