package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Lease{},
		&models.MaintenanceRequest{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret",
	}
}

func seedLandlord(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Password: "landlord-pass",
		Role:     models.RoleLandlord,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed landlord: %v", err)
	}
	return user
}

func seedTenant(t *testing.T, db *gorm.DB, email, landlordID string) *models.User {
	t.Helper()
	user := &models.User{
		Email:      email,
		Password:   "tenant-pass",
		Role:       models.RoleTenant,
		LandlordID: &landlordID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return user
}

func seedProperty(t *testing.T, db *gorm.DB, landlordID string) *models.Property {
	t.Helper()
	property := &models.Property{
		LandlordID:  landlordID,
		Title:       "Test Unit",
		Address:     "1 Test Lane",
		MonthlyRent: 1000,
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return property
}

func asPrincipal(user *models.User) *Principal {
	return &Principal{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	}
}
