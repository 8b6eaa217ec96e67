package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
)

// InterfacePropertyService defines the property service interface
type InterfacePropertyService interface {
	GetPropertyByID(id string) (*models.Property, error)
	ListProperties(caller *Principal) ([]models.Property, error)
	CreateProperty(landlordID string, property *models.Property) error
	UpdateProperty(callerID, id string, updates map[string]interface{}) (*models.Property, error)
	DeleteProperty(callerID, id string) error
}

// PropertyService provides property management
type PropertyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPropertyService creates a new property service
func NewPropertyService(db *gorm.DB, cfg *config.Config) InterfacePropertyService {
	return &PropertyService{
		DB:     db,
		Config: cfg,
	}
}

// GetPropertyByID fetches a property
func (s *PropertyService) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

// ListProperties returns properties visible to the caller: landlords see
// their own, tenants see their landlord's, admins see everything
func (s *PropertyService) ListProperties(caller *Principal) ([]models.Property, error) {
	var properties []models.Property
	query := s.DB.Order("created_at DESC")

	switch caller.Role {
	case models.RoleLandlord:
		query = query.Where("landlord_id = ?", caller.UserID)
	case models.RoleTenant:
		var tenant models.User
		if err := s.DB.First(&tenant, "id = ?", caller.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if tenant.LandlordID == nil {
			return []models.Property{}, nil
		}
		query = query.Where("landlord_id = ?", *tenant.LandlordID)
	case models.RoleAdmin:
		// unfiltered
	default:
		return nil, ErrForbidden
	}

	if err := query.Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// CreateProperty creates a property owned by the calling landlord
func (s *PropertyService) CreateProperty(landlordID string, property *models.Property) error {
	if property.Title == "" || property.Address == "" {
		return fmt.Errorf("%w: title and address are required", ErrInvalidInput)
	}
	property.LandlordID = landlordID
	return s.DB.Create(property).Error
}

// Updatable property fields. landlord_id is immutable after creation.
var propertyFields = map[string]bool{
	"title":        true,
	"address":      true,
	"city":         true,
	"state":        true,
	"zip_code":     true,
	"type":         true,
	"bedrooms":     true,
	"bathrooms":    true,
	"monthly_rent": true,
	"status":       true,
}

// UpdateProperty applies whitelisted edits after the ownership check
func (s *PropertyService) UpdateProperty(callerID, id string, updates map[string]interface{}) (*models.Property, error) {
	property, err := s.GetPropertyByID(id)
	if err != nil {
		return nil, err
	}
	if property.LandlordID != callerID {
		return nil, ErrNotPropertyOwner
	}

	filtered := map[string]interface{}{}
	for field, value := range updates {
		if propertyFields[field] {
			filtered[field] = value
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields supplied", ErrInvalidInput)
	}

	if status, ok := filtered["status"].(string); ok && !validPropertyStatus(status) {
		return nil, fmt.Errorf("%w: unknown property status %q", ErrInvalidInput, status)
	}

	if err := s.DB.Model(property).Updates(filtered).Error; err != nil {
		return nil, err
	}
	return s.GetPropertyByID(id)
}

// DeleteProperty removes a property after the ownership check. Deletion is
// refused while any pending or active lease still references the property.
func (s *PropertyService) DeleteProperty(callerID, id string) error {
	property, err := s.GetPropertyByID(id)
	if err != nil {
		return err
	}
	if property.LandlordID != callerID {
		return ErrNotPropertyOwner
	}

	var leases int64
	err = s.DB.Model(&models.Lease{}).
		Where("property_id = ? AND status IN ?", id, []string{models.LeasePending, models.LeaseActive}).
		Count(&leases).Error
	if err != nil {
		return err
	}
	if leases > 0 {
		return ErrPropertyLeased
	}

	return s.DB.Delete(&models.Property{}, "id = ?", id).Error
}

func validPropertyStatus(status string) bool {
	switch status {
	case models.PropertyAvailable, models.PropertyOccupied, models.PropertyMaintenance, models.PropertyUnavailable:
		return true
	}
	return false
}
