package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lease statuses
const (
	LeasePending    = "pending"
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

// Lease links one property, one tenant and one landlord for a bounded
// validity period. LandlordID is denormalized from the property at creation
// time so role-scoped queries need no join.
type Lease struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	PropertyID      string    `gorm:"type:varchar(64);index;not null" json:"property_id"`
	TenantID        string    `gorm:"type:varchar(64);index;not null" json:"tenant_id"`
	LandlordID      string    `gorm:"type:varchar(64);index;not null" json:"landlord_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `gorm:"index" json:"end_date"`
	MonthlyRent     float64   `json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`
	UtilitiesCost   float64   `json:"utilities_cost"`
	PaymentDueDay   int       `json:"payment_due_day"` // 1-31
	Notes           string    `gorm:"type:text" json:"notes"`
	Status          string    `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook run before inserting a new lease
func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LeasePending
	}
	return nil
}

// LeaseView is a lease enriched with property and tenant display fields for
// immediate UI consumption
type LeaseView struct {
	Lease
	PropertyTitle   string `json:"property_title,omitempty"`
	PropertyAddress string `json:"property_address,omitempty"`
	TenantName      string `json:"tenant_name,omitempty"`
	TenantEmail     string `json:"tenant_email,omitempty"`
}
