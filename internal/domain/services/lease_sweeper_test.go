package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrent-http-service/internal/domain/models"
)

// countingLeaseService records sweep invocations
type countingLeaseService struct {
	InterfaceLeaseService
	sweeps int32
}

func (c *countingLeaseService) ExpireDueLeases(now time.Time) (int, error) {
	atomic.AddInt32(&c.sweeps, 1)
	return 0, nil
}

func TestSweeperRunsImmediatelyAndStops(t *testing.T) {
	counter := &countingLeaseService{}
	sweeper := NewLeaseSweeper(counter, time.Hour)

	sweeper.Start()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter.sweeps) >= 1
	}, time.Second, 5*time.Millisecond)
	sweeper.Stop()

	// Stop returned, so the loop is gone and the count no longer moves
	swept := atomic.LoadInt32(&counter.sweeps)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, swept, atomic.LoadInt32(&counter.sweeps))
}

func TestSweeperTicks(t *testing.T) {
	counter := &countingLeaseService{}
	sweeper := NewLeaseSweeper(counter, 10*time.Millisecond)

	sweeper.Start()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter.sweeps) >= 3
	}, time.Second, 5*time.Millisecond)
	sweeper.Stop()
}

func TestSweeperDefaultInterval(t *testing.T) {
	sweeper := NewLeaseSweeper(&countingLeaseService{}, 0)
	assert.Equal(t, 24*time.Hour, sweeper.interval)
}

func TestSweeperEndToEnd(t *testing.T) {
	db := newTestDB(t)
	landlord := seedLandlord(t, db, "owner@example.com")
	tenant := seedTenant(t, db, "renter@example.com", landlord.ID)
	property := seedProperty(t, db, landlord.ID)
	svc := NewLeaseService(db, testConfig(), nil)

	lease := models.Lease{
		PropertyID: property.ID,
		TenantID:   tenant.ID,
		LandlordID: landlord.ID,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:     models.LeaseActive,
	}
	require.NoError(t, db.Create(&lease).Error)

	sweeper := NewLeaseSweeper(svc, time.Hour)
	sweeper.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	sweeper.Start()
	require.Eventually(t, func() bool {
		var current models.Lease
		if err := db.First(&current, "id = ?", lease.ID).Error; err != nil {
			return false
		}
		return current.Status == models.LeaseExpired
	}, time.Second, 10*time.Millisecond)
	sweeper.Stop()
}
