package services

import (
	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
)

// DashboardStats is the per-role aggregate served to the portal landing page
type DashboardStats struct {
	Properties      map[string]int64 `json:"properties,omitempty"`
	Leases          map[string]int64 `json:"leases"`
	OpenMaintenance int64            `json:"open_maintenance"`
}

// InterfaceDashboardService defines the dashboard aggregation service
type InterfaceDashboardService interface {
	Stats(caller *Principal) (*DashboardStats, error)
}

// DashboardService aggregates counts for the caller's scope
type DashboardService struct {
	DB    *gorm.DB
	Cache InterfaceRedisService
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(db *gorm.DB, cache InterfaceRedisService) InterfaceDashboardService {
	return &DashboardService{DB: db, Cache: cache}
}

// Stats returns role-scoped counts, cached briefly per user
func (s *DashboardService) Stats(caller *Principal) (*DashboardStats, error) {
	if s.Cache != nil {
		var cached DashboardStats
		if err := s.Cache.GetCachedDashboard(caller.UserID, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{Leases: map[string]int64{}}

	// Admins see global counts, landlords and tenants their own scope
	scopeField := ""
	switch caller.Role {
	case models.RoleLandlord:
		scopeField = "landlord_id"
	case models.RoleTenant:
		scopeField = "tenant_id"
	}

	if caller.Role != models.RoleTenant {
		rows, err := s.groupCount(&models.Property{}, scopeField, caller.UserID)
		if err != nil {
			return nil, err
		}
		stats.Properties = rows
	}

	leases, err := s.groupCount(&models.Lease{}, scopeField, caller.UserID)
	if err != nil {
		return nil, err
	}
	stats.Leases = leases

	maintenance := s.DB.Model(&models.MaintenanceRequest{}).Where("status = ?", models.MaintenanceOpen)
	if scopeField != "" {
		maintenance = maintenance.Where(scopeField+" = ?", caller.UserID)
	}
	if err := maintenance.Count(&stats.OpenMaintenance).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		_ = s.Cache.CacheDashboard(caller.UserID, stats)
	}
	return stats, nil
}

// groupCount counts rows per status, optionally filtered by a scope column
func (s *DashboardService) groupCount(model interface{}, scopeField, scopeID string) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	query := s.DB.Model(model).Select("status, count(*) as n").Group("status")
	if scopeField != "" {
		query = query.Where(scopeField+" = ?", scopeID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
