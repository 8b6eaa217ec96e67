package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/error/code"
	"smartrent-http-service/internal/error/response"
	"smartrent-http-service/pkg/logger"
)

// Context keys set by the gateway
const (
	ContextPrincipal = "principal"
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"

	// Identity-only mode keys (registration hand-off)
	ContextFederatedSubject = "federatedSubject"
	ContextFederatedEmail   = "federatedEmail"
	ContextFederatedName    = "federatedName"
)

var (
	verifierChain     *services.VerifierChain
	federatedVerifier services.InterfaceFederatedVerifier
)

// InitAuthMiddleware wires the gateway to the container's credential chain
func InitAuthMiddleware(c *container.ServiceContainer) {
	verifierChain = c.GetVerifierChain()
	federatedVerifier, _ = c.GetService("federated").(services.InterfaceFederatedVerifier)
}

// extractToken strips the "Bearer " prefix from an authorization header
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authentication is the gateway every protected route runs through. It
// resolves the bearer credential to a principal via the verifier chain
// (federated first, then the local session token) and attaches the
// principal to the request context.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, code.ErrMissingCredential, nil)
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		result := verifierChain.Verify(tokenString)

		switch result.Outcome {
		case services.OutcomeAuthenticated:
			c.Set(ContextPrincipal, result.Principal)
			c.Set(ContextUserID, result.Principal.UserID)
			c.Set(ContextUserRole, result.Principal.Role)
			c.Next()
		case services.OutcomeUnregistered:
			response.Fail(c, code.ErrUnregisteredPrincipal, nil)
			c.Abort()
		case services.OutcomeStoreError:
			logger.Error("authentication gateway: user lookup failed: %v", result.Err)
			response.Fail(c, code.ErrDatabase, nil)
			c.Abort()
		default:
			response.Fail(c, code.ErrCredentialInvalid, nil)
			c.Abort()
		}
	}
}

// RequireRole gates a route group to the given roles. It must run after
// Authentication.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			response.Fail(c, code.ErrCredentialInvalid, nil)
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "insufficient permissions: requires "+strings.Join(roles, " or ")+" role")
		c.Abort()
	}
}

// AuthenticateIdentity is the restricted verification mode used only during
// the registration hand-off: it verifies the federated token and exposes
// the claimed identity without requiring a local account.
func AuthenticateIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, code.ErrMissingCredential, nil)
			c.Abort()
			return
		}

		if federatedVerifier == nil || !federatedVerifier.Enabled() {
			response.FailWithMessage(c, code.ErrCredentialInvalid, "federated sign-in is not enabled", nil)
			c.Abort()
			return
		}

		identity, err := federatedVerifier.VerifyIdentity(extractToken(authHeader))
		if err != nil {
			response.Fail(c, code.ErrCredentialInvalid, nil)
			c.Abort()
			return
		}

		c.Set(ContextFederatedSubject, identity.Subject)
		c.Set(ContextFederatedEmail, identity.Email)
		c.Set(ContextFederatedName, identity.Name)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal, or nil
func CurrentPrincipal(c *gin.Context) *services.Principal {
	value, exists := c.Get(ContextPrincipal)
	if !exists {
		return nil
	}
	principal, ok := value.(*services.Principal)
	if !ok {
		return nil
	}
	return principal
}
