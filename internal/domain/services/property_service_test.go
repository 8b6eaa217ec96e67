package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
)

func propertyFixture(t *testing.T) (*gorm.DB, InterfacePropertyService, *models.User) {
	t.Helper()
	db := newTestDB(t)
	landlord := seedLandlord(t, db, "owner@example.com")
	return db, NewPropertyService(db, testConfig()), landlord
}

func TestCreateProperty(t *testing.T) {
	_, svc, landlord := propertyFixture(t)

	property := &models.Property{Title: "Unit A", Address: "1 Main St", MonthlyRent: 900}
	require.NoError(t, svc.CreateProperty(landlord.ID, property))

	assert.NotEmpty(t, property.ID)
	assert.Equal(t, landlord.ID, property.LandlordID)
	assert.Equal(t, models.PropertyAvailable, property.Status)

	err := svc.CreateProperty(landlord.ID, &models.Property{Address: "no title"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListPropertiesScoping(t *testing.T) {
	db, svc, landlord := propertyFixture(t)
	seedProperty(t, db, landlord.ID)
	seedProperty(t, db, landlord.ID)

	other := seedLandlord(t, db, "other@example.com")
	seedProperty(t, db, other.ID)

	tenant := seedTenant(t, db, "renter@example.com", landlord.ID)

	own, err := svc.ListProperties(asPrincipal(landlord))
	require.NoError(t, err)
	assert.Len(t, own, 2)

	// tenants see their landlord's portfolio
	visible, err := svc.ListProperties(asPrincipal(tenant))
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	all, err := svc.ListProperties(&Principal{UserID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdatePropertyOwnership(t *testing.T) {
	db, svc, landlord := propertyFixture(t)
	property := seedProperty(t, db, landlord.ID)
	other := seedLandlord(t, db, "other@example.com")

	_, err := svc.UpdateProperty(other.ID, property.ID, map[string]interface{}{"title": "Hijacked"})
	assert.ErrorIs(t, err, ErrNotPropertyOwner)

	updated, err := svc.UpdateProperty(landlord.ID, property.ID, map[string]interface{}{
		"title":       "Renamed",
		"landlord_id": other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	// ownership is immutable
	assert.Equal(t, landlord.ID, updated.LandlordID)
}

func TestUpdatePropertyStatusValidation(t *testing.T) {
	db, svc, landlord := propertyFixture(t)
	property := seedProperty(t, db, landlord.ID)

	_, err := svc.UpdateProperty(landlord.ID, property.ID, map[string]interface{}{"status": "on-fire"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.UpdateProperty(landlord.ID, property.ID, map[string]interface{}{"status": models.PropertyMaintenance})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyMaintenance, updated.Status)
}

func TestDeletePropertyGuards(t *testing.T) {
	db, svc, landlord := propertyFixture(t)
	property := seedProperty(t, db, landlord.ID)
	other := seedLandlord(t, db, "other@example.com")

	assert.ErrorIs(t, svc.DeleteProperty(other.ID, property.ID), ErrNotPropertyOwner)
	assert.ErrorIs(t, svc.DeleteProperty(landlord.ID, "missing"), ErrPropertyNotFound)

	// a pending lease blocks deletion
	tenant := seedTenant(t, db, "renter@example.com", landlord.ID)
	lease := models.Lease{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		LandlordID: landlord.ID,
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(1, 0, 0),
		Status:     models.LeasePending,
	}
	require.NoError(t, db.Create(&lease).Error)
	assert.ErrorIs(t, svc.DeleteProperty(landlord.ID, property.ID), ErrPropertyLeased)

	// a closed lease does not
	require.NoError(t, db.Model(&lease).Update("status", models.LeaseTerminated).Error)
	require.NoError(t, svc.DeleteProperty(landlord.ID, property.ID))

	_, err := svc.GetPropertyByID(property.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}
