package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
	"smartrent-http-service/utils"
)

// RegisterInput carries the fields of a local-credential registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	RegisterLandlord(input RegisterInput) (*models.User, error)
	CreateTenant(landlordID string, input RegisterInput) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	UpdateProfile(id string, updates map[string]interface{}) (*models.User, error)
	ListTenants(landlordID string) ([]models.User, error)
	LinkFederated(identity *FederatedIdentity) (*models.User, error)
}

// UserService provides account management
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService
}

// NewUserService creates a new user service. cache may be nil.
func NewUserService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// GetUserByID fetches a user, consulting the cache first
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	if s.Cache != nil {
		if user, err := s.Cache.GetCachedUser(id); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.Cache != nil {
		_ = s.Cache.CacheUser(&user)
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RegisterLandlord provisions a landlord account from the public
// registration endpoint
func (s *UserService) RegisterLandlord(input RegisterInput) (*models.User, error) {
	return s.createUser(input, models.RoleLandlord, nil)
}

// CreateTenant provisions a tenant account on behalf of a landlord. The
// landlord back-reference is fixed here and never changes afterwards.
func (s *UserService) CreateTenant(landlordID string, input RegisterInput) (*models.User, error) {
	return s.createUser(input, models.RoleTenant, &landlordID)
}

func (s *UserService) createUser(input RegisterInput, role string, landlordID *string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Email:      email,
		Password:   input.Password,
		Role:       role,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		LandlordID: landlordID,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks an email/password pair
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrPasswordMismatch
		}
		return nil, err
	}
	if user.Password == "" || !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrPasswordMismatch
	}
	return user, nil
}

// Updatable profile fields. Role and landlord_id are immutable by design of
// the registration flow.
var profileFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"phone":      true,
	"avatar_url": true,
}

// UpdateProfile applies whitelisted profile edits
func (s *UserService) UpdateProfile(id string, updates map[string]interface{}) (*models.User, error) {
	filtered := map[string]interface{}{}
	for field, value := range updates {
		if profileFields[field] {
			filtered[field] = value
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields supplied", ErrInvalidInput)
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(user).Updates(filtered).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		_ = s.Cache.InvalidateUser(id)
	}
	return s.GetUserByID(id)
}

// ListTenants returns the tenants registered with a landlord
func (s *UserService) ListTenants(landlordID string) ([]models.User, error) {
	var tenants []models.User
	err := s.DB.
		Where("role = ? AND landlord_id = ?", models.RoleTenant, landlordID).
		Order("created_at DESC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// LinkFederated attaches a verified federated identity to the matching local
// account, creating a landlord account when none exists. This is the
// explicit registration hand-off; the authentication gateway itself never
// provisions users.
func (s *UserService) LinkFederated(identity *FederatedIdentity) (*models.User, error) {
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: federated identity carries no email", ErrInvalidInput)
	}

	user, err := s.GetUserByEmail(identity.Email)
	if err == nil {
		if user.FederatedUID == nil {
			if err := s.DB.Model(user).Update("federated_uid", identity.Subject).Error; err != nil {
				return nil, err
			}
			user.FederatedUID = &identity.Subject
			if s.Cache != nil {
				_ = s.Cache.InvalidateUser(user.ID)
			}
		}
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	firstName, lastName := splitDisplayName(identity.Name)
	user = &models.User{
		// Federated sign-ups keep the provider subject as their stable id
		ID:           identity.Subject,
		Email:        strings.ToLower(identity.Email),
		Role:         models.RoleLandlord,
		FirstName:    firstName,
		LastName:     lastName,
		FederatedUID: &identity.Subject,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func splitDisplayName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
