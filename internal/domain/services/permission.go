package services

import "smartrent-http-service/internal/domain/models"

// The lease lifecycle rules live here and nowhere else. The state machine:
//
//	pending -> active      (tenant only)
//	pending -> terminated  (tenant only; landlords cannot cancel a pending lease)
//	active  -> terminated  (tenant or landlord)
//	active  -> expired     (time sweep only, never client-requested)
//
// Any other (current, target) pair is an illegal edge.

// transitionActor decides which lease parties may drive one edge
type transitionActor func(lease *models.Lease, callerID string) bool

func tenantOnly(lease *models.Lease, callerID string) bool {
	return callerID == lease.TenantID
}

func tenantOrLandlord(lease *models.Lease, callerID string) bool {
	return callerID == lease.TenantID || callerID == lease.LandlordID
}

// The client-invocable edges of the lease state machine
var leaseTransitions = map[[2]string]transitionActor{
	{models.LeasePending, models.LeaseActive}:     tenantOnly,
	{models.LeasePending, models.LeaseTerminated}: tenantOnly,
	{models.LeaseActive, models.LeaseTerminated}:  tenantOrLandlord,
}

// CheckLeaseTransition validates one requested edge. Edge legality is
// checked before the actor so a landlord asking for an impossible edge gets
// InvalidTransition, not Forbidden.
func CheckLeaseTransition(lease *models.Lease, callerID, target string) error {
	actor, ok := leaseTransitions[[2]string{lease.Status, target}]
	if !ok {
		return ErrInvalidTransition
	}
	if !actor(lease, callerID) {
		return ErrNotLeaseParty
	}
	return nil
}

// CanViewLease reports whether the caller may read one lease record
func CanViewLease(lease *models.Lease, caller *Principal) bool {
	if caller.Role == models.RoleAdmin {
		return true
	}
	return caller.UserID == lease.TenantID || caller.UserID == lease.LandlordID
}

// The maintenance request state machine uses the same ownership idiom:
// the landlord works the request, the tenant may withdraw an open one.
var maintenanceTransitions = map[[2]string]func(req *models.MaintenanceRequest, callerID string) bool{
	{models.MaintenanceOpen, models.MaintenanceInProgress}:      maintenanceLandlord,
	{models.MaintenanceOpen, models.MaintenanceCompleted}:       maintenanceLandlord,
	{models.MaintenanceInProgress, models.MaintenanceCompleted}: maintenanceLandlord,
	{models.MaintenanceOpen, models.MaintenanceCancelled}:       maintenanceTenant,
}

func maintenanceLandlord(req *models.MaintenanceRequest, callerID string) bool {
	return callerID == req.LandlordID
}

func maintenanceTenant(req *models.MaintenanceRequest, callerID string) bool {
	return callerID == req.TenantID
}

// CheckMaintenanceTransition validates one requested maintenance edge
func CheckMaintenanceTransition(req *models.MaintenanceRequest, callerID, target string) error {
	actor, ok := maintenanceTransitions[[2]string{req.Status, target}]
	if !ok {
		return ErrInvalidTransition
	}
	if !actor(req, callerID) {
		return ErrForbidden
	}
	return nil
}
