package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smartrent-http-service/internal/app/routes"
	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Lease{},
		&models.MaintenanceRequest{},
		&models.Notification{},
	))

	cfg := &config.Config{JWTSecretKey: "test-secret"}
	r, _ := routes.SetupRouter(db, cfg, nil)
	return r
}

func request(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "success", envelope.Status)
	return envelope.Data
}

// Registers a landlord and a scoped tenant, returning their session tokens
// and the tenant's id.
func onboard(t *testing.T, r *gin.Engine) (landlordToken, tenantToken, tenantID string) {
	t.Helper()

	w := request(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      "owner@example.com",
		"password":   "landlord-pass",
		"first_name": "Olive",
		"last_name":  "Owner",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	landlordToken = decodeData(t, w)["token"].(string)

	w = request(t, r, http.MethodPost, "/api/users/tenants", landlordToken, gin.H{
		"email":    "renter@example.com",
		"password": "tenant-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tenantID = decodeData(t, w)["id"].(string)

	w = request(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "renter@example.com",
		"password": "tenant-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	tenantToken = decodeData(t, w)["token"].(string)
	return landlordToken, tenantToken, tenantID
}

func createProperty(t *testing.T, r *gin.Engine, landlordToken string) string {
	t.Helper()
	w := request(t, r, http.MethodPost, "/api/properties", landlordToken, gin.H{
		"title":        "Sunny 2BR",
		"address":      "12 Main St",
		"monthly_rent": 1450,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeData(t, w)["id"].(string)
}

func TestLeaseLifecycleOverHTTP(t *testing.T) {
	r := setupAPI(t)
	landlordToken, tenantToken, tenantID := onboard(t, r)
	propertyID := createProperty(t, r, landlordToken)

	// monetary fields tolerate string scalars on the wire
	w := request(t, r, http.MethodPost, "/api/leases", landlordToken, gin.H{
		"property_id":     propertyID,
		"tenant_id":       tenantID,
		"start_date":      "2026-01-01",
		"end_date":        "2026-12-31",
		"monthly_rent":    "1450",
		"payment_due_day": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	lease := decodeData(t, w)
	leaseID := lease["id"].(string)
	assert.Equal(t, "pending", lease["status"])
	assert.Equal(t, float64(1450), lease["monthly_rent"])

	// the landlord cannot accept on the tenant's behalf
	w = request(t, r, http.MethodPatch, "/api/leases/"+leaseID+"/status", landlordToken, gin.H{"status": "active"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the tenant accepts
	w = request(t, r, http.MethodPatch, "/api/leases/"+leaseID+"/status", tenantToken, gin.H{"status": "active"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", decodeData(t, w)["status"])

	// an impossible edge is a validation failure, not a permission one
	w = request(t, r, http.MethodPatch, "/api/leases/"+leaseID+"/status", landlordToken, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// expiry can never be requested by a client
	w = request(t, r, http.MethodPatch, "/api/leases/"+leaseID+"/status", tenantToken, gin.H{"status": "expired"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// either party may end an active lease
	w = request(t, r, http.MethodPatch, "/api/leases/"+leaseID+"/status", landlordToken, gin.H{"status": "terminated"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "terminated", decodeData(t, w)["status"])
}

func TestLeaseCreationIsLandlordOnly(t *testing.T) {
	r := setupAPI(t)
	landlordToken, tenantToken, tenantID := onboard(t, r)
	propertyID := createProperty(t, r, landlordToken)

	w := request(t, r, http.MethodPost, "/api/leases", tenantToken, gin.H{
		"property_id":     propertyID,
		"tenant_id":       tenantID,
		"start_date":      "2026-01-01",
		"end_date":        "2026-12-31",
		"payment_due_day": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLeaseCreationValidatesDates(t *testing.T) {
	r := setupAPI(t)
	landlordToken, _, tenantID := onboard(t, r)
	propertyID := createProperty(t, r, landlordToken)

	w := request(t, r, http.MethodPost, "/api/leases", landlordToken, gin.H{
		"property_id":     propertyID,
		"tenant_id":       tenantID,
		"start_date":      "01/01/2026",
		"end_date":        "2026-12-31",
		"payment_due_day": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := setupAPI(t)

	for _, path := range []string{"/api/leases", "/api/properties", "/api/notifications"} {
		w := request(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRegisterLoginMe(t *testing.T) {
	r := setupAPI(t)

	w := request(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "jane@example.com",
		"password": "landlord-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeData(t, w)["token"].(string)

	w = request(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeData(t, w)
	assert.Equal(t, "jane@example.com", me["email"])
	assert.Equal(t, "landlord", me["role"])

	// wrong password
	w = request(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// duplicate registration
	w = request(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "jane@example.com",
		"password": "landlord-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaintenanceFlowOverHTTP(t *testing.T) {
	r := setupAPI(t)
	landlordToken, tenantToken, _ := onboard(t, r)
	propertyID := createProperty(t, r, landlordToken)

	// filing is tenant-only
	w := request(t, r, http.MethodPost, "/api/maintenance", landlordToken, gin.H{
		"property_id": propertyID,
		"title":       "Leaking faucet",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, r, http.MethodPost, "/api/maintenance", tenantToken, gin.H{
		"property_id": propertyID,
		"title":       "Leaking faucet",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := decodeData(t, w)["id"].(string)

	w = request(t, r, http.MethodPatch, "/api/maintenance/"+requestID+"/status", landlordToken, gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", decodeData(t, w)["status"])

	// the landlord was notified about the filing
	w = request(t, r, http.MethodGet, "/api/notifications", landlordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data)
}
