package services

import (
	"errors"

	"smartrent-http-service/internal/domain/models"
)

// Principal is the authenticated identity attached to a request after the
// gateway succeeds. Role and profile fields come from the current user
// record, never from token claims.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// VerifyOutcome classifies the result of one credential verifier
type VerifyOutcome int

const (
	// OutcomeAuthenticated - the credential resolved to a local principal
	OutcomeAuthenticated VerifyOutcome = iota
	// OutcomeNoMatch - the credential is not valid for this verifier; the
	// chain moves on to the next one
	OutcomeNoMatch
	// OutcomeUnregistered - the identity verified but has no local account;
	// terminal, the gateway never auto-provisions
	OutcomeUnregistered
	// OutcomeStoreError - the backing store failed during lookup; terminal
	OutcomeStoreError
)

// CredentialResult is the typed result of a verification attempt
type CredentialResult struct {
	Outcome   VerifyOutcome
	Principal *Principal
	Err       error
}

// CredentialVerifier verifies one credential format. Implementations return
// a typed result instead of failing with an error, so the chain's
// fallthrough is an explicit match.
type CredentialVerifier interface {
	Name() string
	Verify(tokenString string) CredentialResult
}

// principalResolver is the slice of the user service the verifiers need
type principalResolver interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// VerifierChain tries each verifier in order. The federated verifier runs
// first so a migration-period client may present either token kind; any
// federated parse failure falls through to the local verifier.
type VerifierChain struct {
	verifiers []CredentialVerifier
}

// NewVerifierChain builds a chain, skipping nil entries
func NewVerifierChain(verifiers ...CredentialVerifier) *VerifierChain {
	chain := &VerifierChain{}
	for _, v := range verifiers {
		if v != nil {
			chain.verifiers = append(chain.verifiers, v)
		}
	}
	return chain
}

// Verify runs the chain and returns the first terminal result
func (c *VerifierChain) Verify(tokenString string) CredentialResult {
	for _, v := range c.verifiers {
		result := v.Verify(tokenString)
		if result.Outcome != OutcomeNoMatch {
			return result
		}
	}
	return CredentialResult{Outcome: OutcomeNoMatch}
}

func principalFromUser(user *models.User) *Principal {
	return &Principal{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.DisplayName(),
	}
}

// FederatedCredential verifies provider-issued tokens and resolves the
// claimed email to a local account
type FederatedCredential struct {
	verifier InterfaceFederatedVerifier
	users    principalResolver
}

// NewFederatedCredential creates the federated chain link
func NewFederatedCredential(verifier InterfaceFederatedVerifier, users principalResolver) *FederatedCredential {
	return &FederatedCredential{verifier: verifier, users: users}
}

func (f *FederatedCredential) Name() string { return "federated" }

// Verify resolves a federated token to a principal. Token-level failures
// yield OutcomeNoMatch so the chain can fall through to the local verifier.
func (f *FederatedCredential) Verify(tokenString string) CredentialResult {
	if f.verifier == nil || !f.verifier.Enabled() {
		return CredentialResult{Outcome: OutcomeNoMatch}
	}

	identity, err := f.verifier.VerifyIdentity(tokenString)
	if err != nil {
		return CredentialResult{Outcome: OutcomeNoMatch, Err: err}
	}

	user, err := f.users.GetUserByEmail(identity.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return CredentialResult{Outcome: OutcomeUnregistered, Err: err}
		}
		return CredentialResult{Outcome: OutcomeStoreError, Err: err}
	}

	return CredentialResult{Outcome: OutcomeAuthenticated, Principal: principalFromUser(user)}
}

// LocalCredential verifies self-issued session tokens and re-fetches the
// user record so stale role claims are never trusted
type LocalCredential struct {
	jwt   InterfaceJWTService
	users principalResolver
}

// NewLocalCredential creates the local-session chain link
func NewLocalCredential(jwtService InterfaceJWTService, users principalResolver) *LocalCredential {
	return &LocalCredential{jwt: jwtService, users: users}
}

func (l *LocalCredential) Name() string { return "local" }

// Verify resolves a local session token to a principal
func (l *LocalCredential) Verify(tokenString string) CredentialResult {
	claims, err := l.jwt.ParseClaims(tokenString)
	if err != nil {
		return CredentialResult{Outcome: OutcomeNoMatch, Err: err}
	}

	user, err := l.users.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// The account behind the token is gone, the credential is dead
			return CredentialResult{Outcome: OutcomeNoMatch, Err: err}
		}
		return CredentialResult{Outcome: OutcomeStoreError, Err: err}
	}

	return CredentialResult{Outcome: OutcomeAuthenticated, Principal: principalFromUser(user)}
}
