package store

import (
	"context"
	"sync"
	"time"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/internal/pkg/metrics"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
)

// VehicleStore holds the single canonical in-memory snapshot of the fleet.
// The snapshot is only ever replaced wholesale by Load; no component applies
// incremental or optimistic updates to it. On a failed load the previous
// snapshot is retained unchanged (stale-but-available).
type VehicleStore struct {
	fleet core.FleetAPI

	mu          sync.RWMutex
	vehicles    []model.Vehicle
	drivers     []model.Driver
	loading     bool
	lastRefresh time.Time

	logger log.Logger
}

// New creates an empty store backed by the given fleet service port.
func New(fleet core.FleetAPI, logger log.Logger) *VehicleStore {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &VehicleStore{
		fleet:  fleet,
		logger: logger.WithName("store"),
	}
}

// Load requests the full vehicle list and replaces the cached snapshot on
// success. On failure the previous snapshot is retained unchanged and the
// error is returned so callers decide how to surface it.
func (s *VehicleStore) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	vehicles, err := s.fleet.Vehicles(ctx)
	if err != nil {
		metrics.SnapshotRefreshTotal.WithLabelValues("vehicles", "failed").Inc()
		s.logger.Warn("vehicle snapshot refresh failed, keeping previous snapshot", "error", err)
		return err
	}

	s.mu.Lock()
	s.vehicles = vehicles
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	metrics.SnapshotRefreshTotal.WithLabelValues("vehicles", "success").Inc()
	s.logger.Debug("vehicle snapshot replaced", "count", len(vehicles))
	return nil
}

// LoadDrivers refreshes the driver snapshot with the same retain-on-failure
// contract as Load.
func (s *VehicleStore) LoadDrivers(ctx context.Context) error {
	drivers, err := s.fleet.Drivers(ctx)
	if err != nil {
		metrics.SnapshotRefreshTotal.WithLabelValues("drivers", "failed").Inc()
		s.logger.Warn("driver snapshot refresh failed, keeping previous snapshot", "error", err)
		return err
	}

	s.mu.Lock()
	s.drivers = drivers
	s.mu.Unlock()

	metrics.SnapshotRefreshTotal.WithLabelValues("drivers", "success").Inc()
	return nil
}

// Vehicles returns a copy of the current vehicle snapshot.
func (s *VehicleStore) Vehicles() []model.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Drivers returns a copy of the current driver snapshot.
func (s *VehicleStore) Drivers() []model.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Driver, len(s.drivers))
	copy(out, s.drivers)
	return out
}

// Vehicle returns the cached vehicle with the given ID.
func (s *VehicleStore) Vehicle(id string) (model.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			return s.vehicles[i], nil
		}
	}
	return model.Vehicle{}, core.ErrVehicleNotFound
}

// Stats derives fleet statistics from the current snapshot.
func (s *VehicleStore) Stats() model.FleetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.ComputeFleetStats(s.vehicles)
}

// Loading reports whether a vehicle load is in progress.
func (s *VehicleStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastRefresh returns when the vehicle snapshot was last replaced. The zero
// time means no load has succeeded yet.
func (s *VehicleStore) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

func (s *VehicleStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
