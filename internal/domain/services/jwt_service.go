package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"smartrent-http-service/internal/infrastructure/config"
)

// Session tokens are valid for a fixed 24 hour window.
const sessionTokenValidity = 24 * time.Hour

// InterfaceJWTService defines the local session token issuer/verifier
type InterfaceJWTService interface {
	GenerateToken(userID, username, role string) (string, error)
	ParseClaims(tokenString string) (*SessionClaims, error)
}

// JWTService issues and verifies the self-signed session tokens
type JWTService struct {
	secretKey string
	issuer    string
}

// SessionClaims is the claim set embedded in a local session token. The
// embedded role is informational only; authorization always re-reads the
// user record.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "smartrent-http-service",
	}
}

// GenerateToken signs a session token for the given user
func (s *JWTService) GenerateToken(userID, username, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseClaims verifies signature and expiry and returns the claim set
func (s *JWTService) ParseClaims(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
