package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/notify"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/store"
)

// fakeFleet simulates the remote fleet service: a confirmed ChangeStatus is
// applied to its vehicle list, so the following snapshot reload observes the
// post-transition state, exactly like the real service.
type fakeFleet struct {
	mu        sync.Mutex
	vehicles  []model.Vehicle
	changeErr error
	commands  []model.StatusChangeCommand

	inFlight    int
	maxInFlight int
	delay       time.Duration
}

func (f *fakeFleet) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out, nil
}

func (f *fakeFleet) Drivers(ctx context.Context) ([]model.Driver, error) { return nil, nil }

func (f *fakeFleet) Driver(ctx context.Context, id string) (*model.Driver, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFleet) DriverTrips(ctx context.Context, id string) ([]model.Trip, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFleet) ChangeStatus(ctx context.Context, cmd model.StatusChangeCommand) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--

	if f.changeErr != nil {
		return f.changeErr
	}

	f.commands = append(f.commands, cmd)
	for i := range f.vehicles {
		if f.vehicles[i].ID == cmd.VehicleID {
			f.vehicles[i].Status = cmd.Status
			f.vehicles[i].Driver = cmd.Driver
			f.vehicles[i].DriverID = cmd.DriverID
		}
	}
	return nil
}

func newTestEngine(t *testing.T, vehicles ...model.Vehicle) (*Engine, *fakeFleet, *store.VehicleStore, *notify.Bus) {
	t.Helper()

	fleet := &fakeFleet{vehicles: vehicles}
	vehicleStore := store.New(fleet, nil)
	require.NoError(t, vehicleStore.Load(context.Background()))

	bus := notify.NewBus(nil, nil)
	eng := New(fleet, vehicleStore, bus, time.Second, nil)
	return eng, fleet, vehicleStore, bus
}

func TestAssignMovesAvailableVehicleToBusy(t *testing.T) {
	eng, fleet, vehicleStore, bus := newTestEngine(t,
		model.Vehicle{ID: "v1", Name: "Toyota Camry", Status: model.StatusAvailable})

	require.NoError(t, eng.Assign(context.Background(), "v1", "Ivan", nil))

	v, err := vehicleStore.Vehicle("v1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusBusy, v.Status)
	assert.Equal(t, "Ivan", v.Driver)

	require.Len(t, fleet.commands, 1)
	assert.Equal(t, model.StatusBusy, fleet.commands[0].Status)
	assert.Equal(t, "Ivan", fleet.commands[0].Driver)

	entries := bus.Notifications()
	require.Len(t, entries, 1)
	assert.Equal(t, model.NotificationSuccess, entries[0].Type)
	assert.Contains(t, entries[0].Message, "Toyota Camry")
	assert.Contains(t, entries[0].Message, "Ivan")
}

func TestReleaseFromBusy(t *testing.T) {
	eng, _, vehicleStore, bus := newTestEngine(t,
		model.Vehicle{ID: "v1", Name: "BMW 5 Series", Status: model.StatusBusy, Driver: "Ivan"})

	require.NoError(t, eng.Release(context.Background(), "v1"))

	v, err := vehicleStore.Vehicle("v1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, v.Status)
	assert.Equal(t, "", v.Driver)

	entries := bus.Notifications()
	require.Len(t, entries, 1)
	assert.Equal(t, model.NotificationInfo, entries[0].Type)
}

func TestReleaseFromMaintenance(t *testing.T) {
	eng, _, vehicleStore, bus := newTestEngine(t,
		model.Vehicle{ID: "v1", Name: "Kia K5", Status: model.StatusMaintenance})

	require.NoError(t, eng.Release(context.Background(), "v1"))

	v, err := vehicleStore.Vehicle("v1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, v.Status)

	// Release yields info regardless of whether it came from busy or
	// maintenance.
	entries := bus.Notifications()
	require.Len(t, entries, 1)
	assert.Equal(t, model.NotificationInfo, entries[0].Type)
}

func TestSendToMaintenance(t *testing.T) {
	eng, fleet, vehicleStore, bus := newTestEngine(t,
		model.Vehicle{ID: "v1", Name: "Hyundai Sonata", Status: model.StatusAvailable})

	require.NoError(t, eng.SendToMaintenance(context.Background(), "v1"))

	v, err := vehicleStore.Vehicle("v1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, v.Status)
	assert.Equal(t, "", fleet.commands[0].Driver)

	entries := bus.Notifications()
	require.Len(t, entries, 1)
	assert.Equal(t, model.NotificationWarning, entries[0].Type)
}

func TestFailedCommandLeavesStoreAndBusUntouched(t *testing.T) {
	tests := []struct {
		name string
		op   func(eng *Engine) error
		from model.VehicleStatus
	}{
		{"assign", func(eng *Engine) error {
			return eng.Assign(context.Background(), "v1", "Ivan", nil)
		}, model.StatusAvailable},
		{"release", func(eng *Engine) error {
			return eng.Release(context.Background(), "v1")
		}, model.StatusBusy},
		{"maintenance", func(eng *Engine) error {
			return eng.SendToMaintenance(context.Background(), "v1")
		}, model.StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, fleet, vehicleStore, bus := newTestEngine(t,
				model.Vehicle{ID: "v1", Name: "Toyota Camry", Status: tt.from, Driver: ""})
			fleet.changeErr = &core.ServerRejectionError{Op: "change status", StatusCode: 500}

			before := vehicleStore.Vehicles()
			err := tt.op(eng)
			require.Error(t, err)

			var rejection *core.ServerRejectionError
			assert.ErrorAs(t, err, &rejection)
			assert.Equal(t, before, vehicleStore.Vehicles(), "cached snapshot must be unchanged")
			assert.Empty(t, bus.Notifications(), "no notification on a failed command")
		})
	}
}

func TestIllegalTransitionsRejectedBeforeAnyRemoteCall(t *testing.T) {
	tests := []struct {
		name string
		from model.VehicleStatus
		op   func(eng *Engine) error
	}{
		{"assign from busy", model.StatusBusy, func(eng *Engine) error {
			return eng.Assign(context.Background(), "v1", "Ivan", nil)
		}},
		{"assign from maintenance", model.StatusMaintenance, func(eng *Engine) error {
			return eng.Assign(context.Background(), "v1", "Ivan", nil)
		}},
		{"release from available", model.StatusAvailable, func(eng *Engine) error {
			return eng.Release(context.Background(), "v1")
		}},
		{"maintenance from busy", model.StatusBusy, func(eng *Engine) error {
			return eng.SendToMaintenance(context.Background(), "v1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, fleet, _, bus := newTestEngine(t,
				model.Vehicle{ID: "v1", Name: "Toyota Camry", Status: tt.from})

			err := tt.op(eng)
			var invalid *core.InvalidTransitionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.from, invalid.From)

			assert.Empty(t, fleet.commands, "no command may be sent for an illegal transition")
			assert.Empty(t, bus.Notifications())
		})
	}
}

func TestAssignRejectsEmptyDriverName(t *testing.T) {
	eng, fleet, _, _ := newTestEngine(t,
		model.Vehicle{ID: "v1", Name: "Toyota Camry", Status: model.StatusAvailable})

	err := eng.Assign(context.Background(), "v1", "", nil)
	var validation *core.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, fleet.commands)
}

func TestUnknownVehicle(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	err := eng.Release(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrVehicleNotFound)
}

func TestConcurrentOperationsOnOneVehicleAreSerialized(t *testing.T) {
	eng, fleet, _, bus := newTestEngine(t,
		model.Vehicle{ID: "v1", Name: "Toyota Camry", Status: model.StatusAvailable})
	fleet.delay = 20 * time.Millisecond

	// Both operations are legal from the initial status, but whichever runs
	// second must observe the post-transition state and be rejected.
	errs := make(chan error, 2)
	go func() { errs <- eng.Assign(context.Background(), "v1", "Ivan", nil) }()
	go func() { errs <- eng.SendToMaintenance(context.Background(), "v1") }()

	var succeeded, invalid int
	for i := 0; i < 2; i++ {
		err := <-errs
		if err == nil {
			succeeded++
			continue
		}
		var transition *core.InvalidTransitionError
		require.ErrorAs(t, err, &transition)
		invalid++
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, 1, fleet.maxInFlight, "at most one in-flight command per vehicle")
	assert.Len(t, fleet.commands, 1)
	assert.Len(t, bus.Notifications(), 1)
}
