package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/jmwaura/nyumba-api/internal/models"
)

// OccupancyFSM wraps a unit with its occupancy state machine
type OccupancyFSM struct {
	unit *models.Unit
	fsm  *fsm.FSM
}

// NewOccupancyFSM creates a new occupancy state machine for a unit
func NewOccupancyFSM(unit *models.Unit) *OccupancyFSM {
	ofsm := &OccupancyFSM{
		unit: unit,
	}

	ofsm.fsm = fsm.NewFSM(
		unit.Status,
		fsm.Events{
			// vacant → occupied (tenant assigned)
			{Name: "occupy", Src: []string{models.UnitStatusVacant}, Dst: models.UnitStatusOccupied},

			// occupied → vacant (tenant moved out or deactivated)
			{Name: "vacate", Src: []string{models.UnitStatusOccupied}, Dst: models.UnitStatusVacant},
		},
		fsm.Callbacks{},
	)

	return ofsm
}

// Occupy transitions the unit to occupied
func (o *OccupancyFSM) Occupy(ctx context.Context) error {
	if err := o.fsm.Event(ctx, "occupy"); err != nil {
		return fmt.Errorf("unit cannot be occupied in current state %s: %w", o.unit.Status, err)
	}

	o.unit.Status = o.fsm.Current()
	return nil
}

// Vacate transitions the unit to vacant
func (o *OccupancyFSM) Vacate(ctx context.Context) error {
	if err := o.fsm.Event(ctx, "vacate"); err != nil {
		return fmt.Errorf("unit cannot be vacated in current state %s: %w", o.unit.Status, err)
	}

	o.unit.Status = o.fsm.Current()
	return nil
}

// Transition drives the machine toward the target status. Transitioning to
// the current status is a no-op.
func (o *OccupancyFSM) Transition(ctx context.Context, target string) error {
	if o.unit.Status == target {
		return nil
	}

	switch target {
	case models.UnitStatusOccupied:
		return o.Occupy(ctx)
	case models.UnitStatusVacant:
		return o.Vacate(ctx)
	default:
		return fmt.Errorf("unknown unit status: %s", target)
	}
}

// Current returns the current state
func (o *OccupancyFSM) Current() string {
	return o.fsm.Current()
}

// Can checks if a transition is possible
func (o *OccupancyFSM) Can(event string) bool {
	return o.fsm.Can(event)
}
