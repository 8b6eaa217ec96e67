package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
	"smartrent-http-service/pkg/logger"
)

// CreateMaintenanceInput carries a new repair request
type CreateMaintenanceInput struct {
	PropertyID  string
	Title       string
	Description string
	Priority    string
}

// InterfaceMaintenanceService defines the maintenance request service
type InterfaceMaintenanceService interface {
	CreateRequest(caller *Principal, input CreateMaintenanceInput) (*models.MaintenanceRequest, error)
	ListRequests(caller *Principal) ([]models.MaintenanceRequest, error)
	UpdateStatus(caller *Principal, requestID, target string) (*models.MaintenanceRequest, error)
}

// MaintenanceService handles tenant repair requests. Authorization reuses
// the lease ownership idiom: requests are scoped by the denormalized
// landlord id.
type MaintenanceService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotificationService
}

// NewMaintenanceService creates a new maintenance service. notifier may be nil.
func NewMaintenanceService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotificationService) InterfaceMaintenanceService {
	return &MaintenanceService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// CreateRequest files a repair request by a tenant against one of their
// landlord's properties
func (s *MaintenanceService) CreateRequest(caller *Principal, input CreateMaintenanceInput) (*models.MaintenanceRequest, error) {
	if caller.Role != models.RoleTenant {
		return nil, ErrForbidden
	}
	if input.PropertyID == "" {
		return nil, fmt.Errorf("%w: property_id is required", ErrInvalidInput)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Priority != "" && !validPriority(input.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}

	var property models.Property
	if err := s.DB.First(&property, "id = ?", input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	var tenant models.User
	if err := s.DB.First(&tenant, "id = ?", caller.UserID).Error; err != nil {
		return nil, err
	}
	if tenant.LandlordID == nil || *tenant.LandlordID != property.LandlordID {
		return nil, ErrForbidden
	}

	request := models.MaintenanceRequest{
		PropertyID:  property.ID,
		TenantID:    caller.UserID,
		LandlordID:  property.LandlordID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}

	s.notify(property.LandlordID, "Maintenance request filed",
		fmt.Sprintf("%s reported: %s", tenant.DisplayName(), request.Title))
	return &request, nil
}

// ListRequests returns the requests visible to the caller
func (s *MaintenanceService) ListRequests(caller *Principal) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	query := s.DB.Order("created_at DESC")

	switch caller.Role {
	case models.RoleLandlord:
		query = query.Where("landlord_id = ?", caller.UserID)
	case models.RoleTenant:
		query = query.Where("tenant_id = ?", caller.UserID)
	case models.RoleAdmin:
		// unfiltered
	default:
		return nil, ErrForbidden
	}

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus applies a requested maintenance transition
func (s *MaintenanceService) UpdateStatus(caller *Principal, requestID, target string) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := s.DB.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaintenanceNotFound
		}
		return nil, err
	}

	if err := CheckMaintenanceTransition(&request, caller.UserID, target); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&request).Update("status", target).Error; err != nil {
		return nil, err
	}

	recipient := request.TenantID
	if caller.UserID == request.TenantID {
		recipient = request.LandlordID
	}
	s.notify(recipient, "Maintenance request "+target,
		fmt.Sprintf("Request %q is now %s", request.Title, target))
	return &request, nil
}

func (s *MaintenanceService) notify(userID, title, message string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Create(userID, models.NotificationMaintenance, title, message); err != nil {
		logger.Warning("maintenance notification for user %s failed: %v", userID, err)
	}
}

func validPriority(priority string) bool {
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return true
	}
	return false
}
