package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/notify"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/store"
	"github.com/AktanAlmazovich/Fleet-manager/internal/pkg/metrics"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
)

// Engine is the sole writer of vehicle status. Every mutation goes: validate
// against the cached status, issue the command to the fleet service, and on
// confirmation reload the snapshot and record a notification. On any failure
// the store is left untouched and no notification is recorded; the error is
// returned to the caller, which is responsible for surfacing it to the
// operator. There is no retry at any layer.
type Engine struct {
	fleet core.FleetAPI
	store *store.VehicleStore
	bus   *notify.Bus

	// timeout bounds each remote command; expiry is a command failure.
	timeout time.Duration

	locks  keyedMutex
	logger log.Logger
}

// New creates a transition engine. A non-positive timeout defaults to 10s.
func New(fleet core.FleetAPI, vehicleStore *store.VehicleStore, bus *notify.Bus, timeout time.Duration, logger log.Logger) *Engine {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{
		fleet:   fleet,
		store:   vehicleStore,
		bus:     bus,
		timeout: timeout,
		logger:  logger.WithName("engine"),
	}
}

// Assign pairs a driver with an available vehicle, moving it to busy. On
// confirmation a success notification referencing the vehicle and driver is
// recorded.
func (e *Engine) Assign(ctx context.Context, vehicleID, driverName string, driverID *string) error {
	return e.transition(ctx, vehicleID, EventAssign, driverName, driverID,
		func(v model.Vehicle) (model.NotificationType, string, string) {
			return model.NotificationSuccess, "New trip",
				fmt.Sprintf("%s assigned to driver %s", v.Name, driverName)
		})
}

// Release returns a vehicle to the available pool, legal from busy and from
// maintenance. An info notification is recorded either way.
func (e *Engine) Release(ctx context.Context, vehicleID string) error {
	return e.transition(ctx, vehicleID, EventRelease, "", nil,
		func(v model.Vehicle) (model.NotificationType, string, string) {
			return model.NotificationInfo, "Trip finished",
				fmt.Sprintf("%s returned to the fleet", v.Name)
		})
}

// SendToMaintenance takes an available vehicle out of service.
func (e *Engine) SendToMaintenance(ctx context.Context, vehicleID string) error {
	return e.transition(ctx, vehicleID, EventMaintenance, "", nil,
		func(v model.Vehicle) (model.NotificationType, string, string) {
			return model.NotificationWarning, "Maintenance",
				fmt.Sprintf("%s sent for maintenance", v.Name)
		})
}

// transition runs the full issue -> confirm -> reload -> notify sequence
// under the vehicle's lock, so at most one transition per vehicle is ever in
// flight.
func (e *Engine) transition(
	ctx context.Context,
	vehicleID, event, driverName string,
	driverID *string,
	notif func(v model.Vehicle) (model.NotificationType, string, string),
) error {
	op := operationName(event)

	lock := e.locks.get(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	vehicle, err := e.store.Vehicle(vehicleID)
	if err != nil {
		return err
	}

	machine := newStatusMachine(vehicle.Status)
	target, err := machine.fire(ctx, vehicleID, event, driverName)
	if err != nil {
		return err
	}

	cmd := model.StatusChangeCommand{
		VehicleID: vehicleID,
		Status:    target,
		Driver:    driverName,
		DriverID:  driverID,
	}

	cmdCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	err = e.fleet.ChangeStatus(cmdCtx, cmd)
	metrics.CommandLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CommandTotal.WithLabelValues(op, "failed").Inc()
		e.logger.Warn("status change rejected", "vehicle", vehicleID, "operation", op, "error", err)
		return err
	}
	metrics.CommandTotal.WithLabelValues(op, "success").Inc()

	// The transition is durable on the server. A failed reload leaves the
	// snapshot stale until the next refresh, but must not hide the event.
	if err := e.store.Load(ctx); err != nil {
		e.logger.Warn("snapshot reload after confirmed transition failed", "vehicle", vehicleID, "error", err)
	}

	typ, title, message := notif(vehicle)
	e.bus.Add(typ, title, message)

	e.logger.Info("vehicle status changed",
		"vehicle", vehicleID, "from", vehicle.Status, "to", target, "operation", op)
	return nil
}

func operationName(event string) string {
	switch event {
	case EventAssign:
		return "assign"
	case EventRelease:
		return "release"
	case EventMaintenance:
		return "maintenance"
	}
	return event
}

// keyedMutex hands out one mutex per vehicle ID. Mutexes are never reclaimed;
// the fleet is small and IDs are stable.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) get(id string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	if l, ok := k.locks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	k.locks[id] = l
	return l
}
