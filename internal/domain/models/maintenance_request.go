package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Maintenance request statuses
const (
	MaintenanceOpen       = "open"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

// Maintenance priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// MaintenanceRequest is a tenant-filed repair request against a property.
// LandlordID is denormalized from the property the same way leases do it.
type MaintenanceRequest struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	PropertyID  string    `gorm:"type:varchar(64);index;not null" json:"property_id"`
	TenantID    string    `gorm:"type:varchar(64);index;not null" json:"tenant_id"`
	LandlordID  string    `gorm:"type:varchar(64);index;not null" json:"landlord_id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    string    `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Status      string    `gorm:"type:varchar(20);index;default:'open'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook run before inserting a new request
func (m *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = MaintenanceOpen
	}
	if m.Priority == "" {
		m.Priority = PriorityMedium
	}
	return nil
}
