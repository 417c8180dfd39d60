package engine

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	fsmutil "github.com/AktanAlmazovich/Fleet-manager/internal/pkg/util/fsm"
)

// Events of the vehicle lifecycle. The table below is the only authority on
// which transitions are legal; the UI offering a button is never trusted.
//
//	available --assign--> busy
//	busy --release--> available
//	maintenance --release--> available
//	available --send_to_maintenance--> maintenance
const (
	EventAssign      = "assign"
	EventRelease     = "release"
	EventMaintenance = "send_to_maintenance"
)

// statusMachine wraps an fsm seeded at a vehicle's cached status and answers
// whether one lifecycle event may fire, and what status it leads to.
type statusMachine struct {
	*fsm.FSM
}

func newStatusMachine(current model.VehicleStatus) *statusMachine {
	m := &statusMachine{}

	events := fsm.Events{
		{Name: EventAssign, Src: []string{string(model.StatusAvailable)}, Dst: string(model.StatusBusy)},
		{Name: EventRelease, Src: []string{string(model.StatusBusy), string(model.StatusMaintenance)}, Dst: string(model.StatusAvailable)},
		{Name: EventMaintenance, Src: []string{string(model.StatusAvailable)}, Dst: string(model.StatusMaintenance)},
	}

	callbacks := fsm.Callbacks{
		// Guard: an assignment must carry a non-empty driver name.
		"before_" + EventAssign: fsmutil.WrapEvent(m.guardDriverName),
	}

	m.FSM = fsm.NewFSM(string(current), events, callbacks)
	return m
}

func (m *statusMachine) guardDriverName(ctx context.Context, e *fsm.Event) error {
	name, _ := e.Args[0].(string)
	if name == "" {
		return &core.ValidationError{Field: "driver name", Reason: "must not be empty"}
	}
	return nil
}

// fire attempts the event and returns the resulting status. An event that is
// not legal from the seeded status maps to *core.InvalidTransitionError.
func (m *statusMachine) fire(ctx context.Context, vehicleID, event string, args ...any) (model.VehicleStatus, error) {
	from := model.VehicleStatus(m.Current())

	if err := m.Event(ctx, event, args...); err != nil {
		var invalid fsm.InvalidEventError
		if errors.As(err, &invalid) {
			return "", &core.InvalidTransitionError{VehicleID: vehicleID, From: from, Event: event}
		}
		return "", err
	}

	return model.VehicleStatus(m.Current()), nil
}
