package core

import (
	"context"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
)

// FleetAPI is the port to the remote fleet service. The service owns all
// vehicle, driver and trip records; the console only reads snapshots and
// requests status mutations through it. Implemented by the HTTP adapter in
// internal/console/remote.
type FleetAPI interface {
	// Vehicles returns the full vehicle list.
	Vehicles(ctx context.Context) ([]model.Vehicle, error)

	// Drivers returns the driver list, summary fields only.
	Drivers(ctx context.Context) ([]model.Driver, error)

	// Driver returns a single driver including trip history.
	Driver(ctx context.Context, id string) (*model.Driver, error)

	// DriverTrips returns the trips of a driver.
	DriverTrips(ctx context.Context, id string) ([]model.Trip, error)

	// ChangeStatus requests a status mutation. A nil return means the
	// transition is durable on the server; any error means it must be
	// treated as failed.
	ChangeStatus(ctx context.Context, cmd model.StatusChangeCommand) error
}

// EventSink receives a copy of every notification recorded on the bus, for
// fan-out beyond the console (e.g. an MQTT broker). Optional.
type EventSink interface {
	Publish(ctx context.Context, n model.Notification) error
}
