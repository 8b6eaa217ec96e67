package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate these
// into error codes; anything not listed here is treated as a storage failure.
var (
	// ErrInvalidInput marks missing or semantically wrong request fields.
	// Usually wrapped with detail via fmt.Errorf("%w: ...", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden marks a failed role or ownership check
	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("invalid email or password")

	ErrPropertyNotFound = errors.New("property not found")
	ErrNotPropertyOwner = errors.New("property does not belong to caller")
	ErrPropertyLeased   = errors.New("property has a pending or active lease")

	ErrLeaseNotFound     = errors.New("lease not found")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrNotATenant        = errors.New("selected user is not a tenant")
	ErrTenantNotScoped   = errors.New("tenant is not registered with this landlord")
	ErrNotLeaseParty     = errors.New("caller is not a party to this lease")
	ErrInvalidTransition = errors.New("lease status transition not allowed")

	ErrMaintenanceNotFound  = errors.New("maintenance request not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
