package services

import (
	"time"

	"smartrent-http-service/pkg/logger"
)

// LeaseSweeper drives the time-based expiry of active leases. It runs once
// at startup and then on a fixed interval. A failed run is logged and left
// for the next tick; the selection predicate makes retries harmless.
type LeaseSweeper struct {
	leases   InterfaceLeaseService
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
}

// NewLeaseSweeper creates a sweeper over the lease service
func NewLeaseSweeper(leases InterfaceLeaseService, interval time.Duration) *LeaseSweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &LeaseSweeper{
		leases:   leases,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop
func (s *LeaseSweeper) Start() {
	go s.run()
}

// Stop shuts the loop down and waits for it to finish
func (s *LeaseSweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *LeaseSweeper) run() {
	defer close(s.done)

	// An uncoordinated race with a concurrent client termination is
	// accepted: both writes land on exit states, last one wins.
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *LeaseSweeper) sweep() {
	expired, err := s.leases.ExpireDueLeases(s.now())
	if err != nil {
		logger.Error("lease expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		logger.Info("lease expiry sweep marked %d lease(s) expired", expired)
	}
}
