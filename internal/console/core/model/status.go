package model

import (
	"encoding/json"
	"fmt"
)

// VehicleStatus is the operational state of a vehicle. It is a closed enum:
// anything outside the three known values is rejected at parse time so an
// illegal status can never propagate past a boundary as a plain string.
type VehicleStatus string

const (
	StatusAvailable   VehicleStatus = "available"
	StatusBusy        VehicleStatus = "busy"
	StatusMaintenance VehicleStatus = "maintenance"
)

// ParseVehicleStatus validates a raw status string from the wire.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch VehicleStatus(s) {
	case StatusAvailable, StatusBusy, StatusMaintenance:
		return VehicleStatus(s), nil
	}
	return "", fmt.Errorf("unknown vehicle status %q", s)
}

func (s VehicleStatus) String() string {
	return string(s)
}

// MarshalJSON implements json.Marshaler.
func (s VehicleStatus) MarshalJSON() ([]byte, error) {
	if _, err := ParseVehicleStatus(string(s)); err != nil {
		return nil, err
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler, failing fast on unknown values.
func (s *VehicleStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseVehicleStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
