package core

import (
	"errors"
	"fmt"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
)

var (
	// ErrVehicleNotFound is returned by snapshot lookups for unknown IDs.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrSubmissionInFlight is returned by the assignment workflow when a
	// submission is already pending for the same target vehicle.
	ErrSubmissionInFlight = errors.New("assignment submission already in flight")
)

// NetworkError is a transport failure or timeout reaching the fleet service.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fleet service unreachable during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerRejectionError means the fleet service responded but signalled
// non-success for the request.
type ServerRejectionError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServerRejectionError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("fleet service rejected %s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("fleet service rejected %s: status %d", e.Op, e.StatusCode)
}

// ValidationError is a locally detected invalid input, caught before any
// remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError means the requested transition is illegal given the
// vehicle's current cached status. The command is never sent.
type InvalidTransitionError struct {
	VehicleID string
	From      model.VehicleStatus
	Event     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("vehicle %s: cannot %s from status %s", e.VehicleID, e.Event, e.From)
}
