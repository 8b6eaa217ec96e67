package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
	"smartrent-http-service/pkg/logger"
)

// CreateLeaseInput carries the lease creation fields after wire-level
// coercion. Rent and deposit arrive already collapsed to 0 when the client
// sent garbage; positivity is deliberately not validated.
type CreateLeaseInput struct {
	PropertyID      string
	TenantID        string
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     float64
	SecurityDeposit float64
	UtilitiesCost   float64
	PaymentDueDay   int
	Notes           string
}

// InterfaceLeaseService defines the lease lifecycle controller
type InterfaceLeaseService interface {
	CreateLease(caller *Principal, input CreateLeaseInput) (*models.LeaseView, error)
	UpdateLeaseStatus(caller *Principal, leaseID, target string) (*models.Lease, error)
	ListLeases(caller *Principal) ([]models.LeaseView, error)
	GetLease(caller *Principal, leaseID string) (*models.LeaseView, error)
	ExpireDueLeases(now time.Time) (int, error)
}

// LeaseService enforces who may create, transition and query leases, and
// the ordering between lease state, property state and the tenant/landlord
// relationship
type LeaseService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotificationService
}

// NewLeaseService creates a new lease service. notifier may be nil.
func NewLeaseService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotificationService) InterfaceLeaseService {
	return &LeaseService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// CreateLease creates a pending lease. Preconditions are checked in a fixed
// order and fail fast on the first violation.
func (s *LeaseService) CreateLease(caller *Principal, input CreateLeaseInput) (*models.LeaseView, error) {
	// 1. only landlords create leases
	if caller.Role != models.RoleLandlord {
		return nil, ErrForbidden
	}

	// 2. the property reference must be present
	if input.PropertyID == "" {
		return nil, fmt.Errorf("%w: property_id is required", ErrInvalidInput)
	}

	// 3. and must exist
	var property models.Property
	if err := s.DB.First(&property, "id = ?", input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	// 4. and belong to the caller
	if property.LandlordID != caller.UserID {
		return nil, ErrNotPropertyOwner
	}

	// 5. the tenant must exist
	var tenant models.User
	if err := s.DB.First(&tenant, "id = ?", input.TenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	// 6. and actually be a tenant
	if tenant.Role != models.RoleTenant {
		return nil, ErrNotATenant
	}

	// 7. and be registered with this landlord
	if tenant.LandlordID == nil || *tenant.LandlordID != caller.UserID {
		return nil, ErrTenantNotScoped
	}

	if input.PaymentDueDay < 1 || input.PaymentDueDay > 31 {
		return nil, fmt.Errorf("%w: payment_due_day must be between 1 and 31", ErrInvalidInput)
	}

	lease := models.Lease{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		// Denormalized from the property record, never taken from the caller
		LandlordID:      property.LandlordID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MonthlyRent:     input.MonthlyRent,
		SecurityDeposit: input.SecurityDeposit,
		UtilitiesCost:   input.UtilitiesCost,
		PaymentDueDay:   input.PaymentDueDay,
		Notes:           input.Notes,
		Status:          models.LeasePending,
	}
	if err := s.DB.Create(&lease).Error; err != nil {
		return nil, err
	}

	s.notify(tenant.ID, models.NotificationLease, "New lease offer",
		fmt.Sprintf("A lease for %s is awaiting your response", property.Title))

	view := &models.LeaseView{
		Lease:           lease,
		PropertyTitle:   property.Title,
		PropertyAddress: property.Address,
		TenantName:      tenant.DisplayName(),
		TenantEmail:     tenant.Email,
	}
	return view, nil
}

// UpdateLeaseStatus applies a client-requested transition. Only active and
// terminated are ever accepted as targets; expiry is driven by the sweep.
func (s *LeaseService) UpdateLeaseStatus(caller *Principal, leaseID, target string) (*models.Lease, error) {
	var lease models.Lease
	if err := s.DB.First(&lease, "id = ?", leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaseNotFound
		}
		return nil, err
	}

	if target != models.LeaseActive && target != models.LeaseTerminated {
		return nil, ErrInvalidTransition
	}
	if err := CheckLeaseTransition(&lease, caller.UserID, target); err != nil {
		return nil, err
	}

	// Status and updated_at only. The property record is untouched on this
	// path; only the expiry sweep cascades.
	if err := s.DB.Model(&lease).Update("status", target).Error; err != nil {
		return nil, err
	}

	s.notifyCounterparty(&lease, caller.UserID, target)
	return &lease, nil
}

// ListLeases returns the leases visible to the caller
func (s *LeaseService) ListLeases(caller *Principal) ([]models.LeaseView, error) {
	var leases []models.Lease
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

	if err := query.Find(&leases).Error; err != nil {
		return nil, err
	}

	views := make([]models.LeaseView, 0, len(leases))
	for i := range leases {
		views = append(views, s.enrich(&leases[i]))
	}
	return views, nil
}

// GetLease returns one enriched lease, visible only to its parties and admins
func (s *LeaseService) GetLease(caller *Principal, leaseID string) (*models.LeaseView, error) {
	var lease models.Lease
	if err := s.DB.First(&lease, "id = ?", leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaseNotFound
		}
		return nil, err
	}
	if !CanViewLease(&lease, caller) {
		return nil, ErrForbidden
	}
	view := s.enrich(&lease)
	return &view, nil
}

// ExpireDueLeases marks every active lease whose end date has passed as
// expired and flips the referenced properties back to available. The
// selection predicate makes the sweep idempotent: an already-expired lease
// is never re-selected. The property cascade is best effort and not atomic
// with the lease update; a failed cascade is retried by the next run.
func (s *LeaseService) ExpireDueLeases(now time.Time) (int, error) {
	today := now.UTC().Truncate(24 * time.Hour)

	var due []models.Lease
	err := s.DB.
		Where("status = ? AND end_date < ?", models.LeaseActive, today).
		Find(&due).Error
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	leaseIDs := make([]string, 0, len(due))
	propertySet := map[string]bool{}
	for _, lease := range due {
		leaseIDs = append(leaseIDs, lease.ID)
		propertySet[lease.PropertyID] = true
	}

	// The status predicate is repeated so a lease terminated since the
	// select is left alone; both are exit states either way.
	err = s.DB.Model(&models.Lease{}).
		Where("id IN ? AND status = ?", leaseIDs, models.LeaseActive).
		Update("status", models.LeaseExpired).Error
	if err != nil {
		return 0, err
	}

	propertyIDs := make([]string, 0, len(propertySet))
	for id := range propertySet {
		propertyIDs = append(propertyIDs, id)
	}
	err = s.DB.Model(&models.Property{}).
		Where("id IN ?", propertyIDs).
		Update("status", models.PropertyAvailable).Error
	if err != nil {
		logger.Error("lease sweep: property cascade failed for %d properties: %v", len(propertyIDs), err)
	}

	return len(leaseIDs), nil
}

// enrich attaches property and tenant display fields, best effort
func (s *LeaseService) enrich(lease *models.Lease) models.LeaseView {
	view := models.LeaseView{Lease: *lease}

	var property models.Property
	if err := s.DB.First(&property, "id = ?", lease.PropertyID).Error; err == nil {
		view.PropertyTitle = property.Title
		view.PropertyAddress = property.Address
	}
	var tenant models.User
	if err := s.DB.First(&tenant, "id = ?", lease.TenantID).Error; err == nil {
		view.TenantName = tenant.DisplayName()
		view.TenantEmail = tenant.Email
	}
	return view
}

func (s *LeaseService) notify(userID, kind, title, message string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Create(userID, kind, title, message); err != nil {
		logger.Warning("lease notification for user %s failed: %v", userID, err)
	}
}

// notifyCounterparty tells the other lease party about a transition
func (s *LeaseService) notifyCounterparty(lease *models.Lease, actorID, target string) {
	recipient := lease.LandlordID
	if actorID == lease.LandlordID {
		recipient = lease.TenantID
	}
	s.notify(recipient, models.NotificationLease, "Lease "+target,
		fmt.Sprintf("Lease %s is now %s", lease.ID, target))
}
