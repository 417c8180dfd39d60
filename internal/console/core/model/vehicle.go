package model

// Vehicle represents a single vehicle as reported by the remote fleet
// service. Vehicles are created and destroyed only by the remote service;
// the console never writes to these fields, it only requests status
// mutations and re-reads the canonical state.
type Vehicle struct {
	// ID is the unique, stable identifier of the vehicle.
	ID string `json:"id"`

	// Name is the human-readable display name, e.g. "Toyota Camry".
	Name string `json:"name"`

	// Plate is the registration plate string.
	Plate string `json:"plate"`

	// Image is an opaque reference to the vehicle's picture, owned by the
	// remote service.
	Image string `json:"image,omitempty"`

	// Mileage is the odometer reading in kilometers. Non-negative, and
	// assumed monotonically non-decreasing over the vehicle's lifetime.
	Mileage int `json:"mileage"`

	// Status is the operational state.
	Status VehicleStatus `json:"status"`

	// Driver is the assigned driver's name. Non-empty only while Status is
	// StatusBusy.
	Driver string `json:"driver"`

	// DriverID is the assigned driver's identifier, if any.
	DriverID *string `json:"driverId"`

	// Lat/Lng are present only when the vehicle is trackable.
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// Trackable reports whether the vehicle has a known position.
func (v *Vehicle) Trackable() bool {
	return v.Lat != nil && v.Lng != nil
}
