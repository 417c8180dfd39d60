package workflow

import (
	"context"
	"strings"
	"sync"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
)

// Assigner is the part of the transition engine the workflow delegates to.
type Assigner interface {
	Assign(ctx context.Context, vehicleID, driverName string, driverID *string) error
}

// Assignment owns driver assignments for one target vehicle. The operator's
// free-text input is validated and handed to the engine in a single atomic
// step, so input from one submission can never leak into a concurrent one.
// At most one submission per vehicle may be in flight.
type Assignment struct {
	engine    Assigner
	vehicleID string

	mu       sync.Mutex
	inFlight bool
}

// NewAssignment creates an idle workflow for the given vehicle.
func NewAssignment(engine Assigner, vehicleID string) *Assignment {
	return &Assignment{engine: engine, vehicleID: vehicleID}
}

// Submit validates the operator's input and delegates to the engine. The
// driver name is trimmed; an empty result rejects the submission before any
// remote call. A second Submit while one is pending returns
// core.ErrSubmissionInFlight.
func (a *Assignment) Submit(ctx context.Context, driverName string, driverID *string) error {
	name := strings.TrimSpace(driverName)
	if name == "" {
		return &core.ValidationError{Field: "driver name", Reason: "must not be empty"}
	}

	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return core.ErrSubmissionInFlight
	}
	a.inFlight = true
	a.mu.Unlock()

	err := a.engine.Assign(ctx, a.vehicleID, name, driverID)

	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()

	return err
}

// Registry hands out one workflow per vehicle ID, created lazily.
type Registry struct {
	engine Assigner

	mu        sync.Mutex
	workflows map[string]*Assignment
}

// NewRegistry creates an empty workflow registry.
func NewRegistry(engine Assigner) *Registry {
	return &Registry{
		engine:    engine,
		workflows: make(map[string]*Assignment),
	}
}

// For returns the workflow owning assignments for the given vehicle.
func (r *Registry) For(vehicleID string) *Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wf, ok := r.workflows[vehicleID]; ok {
		return wf
	}
	wf := NewAssignment(r.engine, vehicleID)
	r.workflows[vehicleID] = wf
	return wf
}
