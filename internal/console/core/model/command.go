package model

// StatusChangeCommand is the ephemeral instruction sent to the remote fleet
// service to mutate a vehicle's status. It is constructed by the transition
// engine, posted once and discarded; it is never persisted. The json tags
// are the exact wire shape of POST /vehicles/{id}/status.
type StatusChangeCommand struct {
	// VehicleID is the target vehicle. Carried in the URL path, not the body.
	VehicleID string `json:"-"`

	Status VehicleStatus `json:"status"`

	// Driver is the driver name to pair with the status. Empty for release
	// and maintenance commands.
	Driver string `json:"driver"`

	// DriverID is the driver identifier, when known.
	DriverID *string `json:"driverId"`
}
