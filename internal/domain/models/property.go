package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property statuses
const (
	PropertyAvailable   = "available"
	PropertyOccupied    = "occupied"
	PropertyMaintenance = "maintenance"
	PropertyUnavailable = "unavailable"
)

// Property represents a rental unit owned by a landlord. LandlordID is
// immutable after creation.
type Property struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	LandlordID  string    `gorm:"type:varchar(64);index;not null" json:"landlord_id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Address     string    `gorm:"type:varchar(255);not null" json:"address"`
	City        string    `gorm:"type:varchar(100)" json:"city"`
	State       string    `gorm:"type:varchar(100)" json:"state"`
	ZipCode     string    `gorm:"type:varchar(20)" json:"zip_code"`
	Type        string    `gorm:"type:varchar(50)" json:"type"` // apartment, house, studio, ...
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	MonthlyRent float64   `json:"monthly_rent"`
	Status      string    `gorm:"type:varchar(20);default:'available'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook run before inserting a new property
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PropertyAvailable
	}
	return nil
}
