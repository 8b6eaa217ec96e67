package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartrent-http-service/utils"
)

// User roles
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
	RoleAdmin    = "admin"
)

// User represents a landlord, tenant or admin account. The ID is either a
// generated surrogate key or, for federated sign-ups, stays a local uuid with
// the provider subject stored in FederatedUID.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:varchar(100)" json:"-"` // empty for federated-only accounts
	Role         string    `gorm:"type:varchar(20);not null" json:"role"`
	FirstName    string    `gorm:"type:varchar(50)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(50)" json:"last_name"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	AvatarURL    string    `gorm:"type:varchar(255)" json:"avatar_url"`
	FederatedUID *string   `gorm:"type:varchar(128);uniqueIndex" json:"federated_uid,omitempty"`
	LandlordID   *string   `gorm:"type:varchar(64);index" json:"landlord_id,omitempty"` // tenants only, fixed at registration
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName returns the name shown in enriched records
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// BeforeCreate is a GORM hook run before inserting a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	// Hash the password if one was provided
	if u.Password != "" {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return nil
}

// BeforeSave is a GORM hook run before saving a user
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Hash the password if it was replaced with a plaintext one
	if u.Password != "" && len(u.Password) < 60 {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return nil
}
