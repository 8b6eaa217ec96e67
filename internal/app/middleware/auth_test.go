package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/infrastructure/config"
)

type stubProviderVerifier struct {
	enabled  bool
	token    string
	identity *services.FederatedIdentity
}

func (s *stubProviderVerifier) Enabled() bool { return s.enabled }

func (s *stubProviderVerifier) VerifyIdentity(tokenString string) (*services.FederatedIdentity, error) {
	if tokenString != s.token {
		return nil, errors.New("signature mismatch")
	}
	return s.identity, nil
}

type gatewayFixture struct {
	db       *gorm.DB
	jwt      services.InterfaceJWTService
	users    services.InterfaceUserService
	provider *stubProviderVerifier
}

// setupGateway wires the package-level chain the way the container does,
// with a stub in place of the real provider verifier
func setupGateway(t *testing.T) *gatewayFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &config.Config{JWTSecretKey: "test-secret"}
	users := services.NewUserService(db, cfg, nil)
	jwtService := services.NewJWTService(cfg)
	provider := &stubProviderVerifier{enabled: true, token: "provider-token"}

	verifierChain = services.NewVerifierChain(
		services.NewFederatedCredential(provider, users),
		services.NewLocalCredential(jwtService, users),
	)
	federatedVerifier = provider

	return &gatewayFixture{db: db, jwt: jwtService, users: users, provider: provider}
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", Authentication(), func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID, "role": principal.Role})
	})
	r.GET("/landlord-only", Authentication(), RequireRole(models.RoleLandlord), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticationMissingHeader(t *testing.T) {
	setupGateway(t)
	w := doGet(protectedRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationRejectsGarbageToken(t *testing.T) {
	setupGateway(t)
	w := doGet(protectedRouter(), "/protected", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationLocalToken(t *testing.T) {
	fx := setupGateway(t)
	user, err := fx.users.RegisterLandlord(services.RegisterInput{
		Email: "jane@example.com", Password: "landlord-pass",
	})
	require.NoError(t, err)
	token, err := fx.jwt.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	w := doGet(protectedRouter(), "/protected", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["user_id"])
	assert.Equal(t, models.RoleLandlord, body["role"])
}

func TestAuthenticationDeletedAccountTokenFails(t *testing.T) {
	fx := setupGateway(t)
	token, err := fx.jwt.GenerateToken("gone-user", "gone@example.com", models.RoleLandlord)
	require.NoError(t, err)

	w := doGet(protectedRouter(), "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A provider token authenticates through the chain, and the role served is
// whatever the user record says today, not what the token carries.
func TestAuthenticationFederatedToken(t *testing.T) {
	fx := setupGateway(t)
	user, err := fx.users.RegisterLandlord(services.RegisterInput{
		Email: "fed@example.com", Password: "landlord-pass",
	})
	require.NoError(t, err)
	fx.provider.identity = &services.FederatedIdentity{Subject: "sub-1", Email: user.Email}

	w := doGet(protectedRouter(), "/protected", "Bearer provider-token")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["user_id"])
}

func TestAuthenticationUnregisteredIdentity(t *testing.T) {
	fx := setupGateway(t)
	fx.provider.identity = &services.FederatedIdentity{Subject: "sub-1", Email: "new@example.com"}

	w := doGet(protectedRouter(), "/protected", "Bearer provider-token")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// The migration-period fallback: a local session token works even though
// the federated verifier runs first and rejects it.
func TestAuthenticationLocalTokenWithFederatedEnabled(t *testing.T) {
	fx := setupGateway(t)
	user, err := fx.users.RegisterLandlord(services.RegisterInput{
		Email: "jane@example.com", Password: "landlord-pass",
	})
	require.NoError(t, err)
	token, err := fx.jwt.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	w := doGet(protectedRouter(), "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	fx := setupGateway(t)
	landlord, err := fx.users.RegisterLandlord(services.RegisterInput{
		Email: "owner@example.com", Password: "landlord-pass",
	})
	require.NoError(t, err)
	tenant, err := fx.users.CreateTenant(landlord.ID, services.RegisterInput{
		Email: "renter@example.com", Password: "tenant-pass",
	})
	require.NoError(t, err)

	landlordToken, err := fx.jwt.GenerateToken(landlord.ID, landlord.Email, landlord.Role)
	require.NoError(t, err)
	tenantToken, err := fx.jwt.GenerateToken(tenant.ID, tenant.Email, tenant.Role)
	require.NoError(t, err)

	r := protectedRouter()
	assert.Equal(t, http.StatusOK, doGet(r, "/landlord-only", "Bearer "+landlordToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/landlord-only", "Bearer "+tenantToken).Code)
}

func TestAuthenticateIdentity(t *testing.T) {
	fx := setupGateway(t)
	fx.provider.identity = &services.FederatedIdentity{
		Subject: "sub-9",
		Email:   "new@example.com",
		Name:    "New User",
	}

	r := gin.New()
	r.POST("/register", AuthenticateIdentity(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": c.GetString(ContextFederatedSubject),
			"email":   c.GetString(ContextFederatedEmail),
		})
	})

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set("Authorization", "Bearer provider-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sub-9", body["subject"])
	assert.Equal(t, "new@example.com", body["email"])

	// bad provider token
	req = httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// provider disabled entirely
	fx.provider.enabled = false
	req = httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set("Authorization", "Bearer provider-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
