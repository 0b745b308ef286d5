package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmwaura/nyumba-api/internal/models"
)

func TestOccupancyFSM_Occupy(t *testing.T) {
	unit := &models.Unit{ID: 1, Status: models.UnitStatusVacant}
	machine := NewOccupancyFSM(unit)

	err := machine.Occupy(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.UnitStatusOccupied, unit.Status)
	assert.Equal(t, models.UnitStatusOccupied, machine.Current())
}

func TestOccupancyFSM_Vacate(t *testing.T) {
	unit := &models.Unit{ID: 1, Status: models.UnitStatusOccupied}
	machine := NewOccupancyFSM(unit)

	err := machine.Vacate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.UnitStatusVacant, unit.Status)
}

func TestOccupancyFSM_OccupyAlreadyOccupied(t *testing.T) {
	unit := &models.Unit{ID: 1, Status: models.UnitStatusOccupied}
	machine := NewOccupancyFSM(unit)

	err := machine.Occupy(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.UnitStatusOccupied, unit.Status)
}

func TestOccupancyFSM_VacateAlreadyVacant(t *testing.T) {
	unit := &models.Unit{ID: 1, Status: models.UnitStatusVacant}
	machine := NewOccupancyFSM(unit)

	err := machine.Vacate(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.UnitStatusVacant, unit.Status)
}

func TestOccupancyFSM_TransitionNoOp(t *testing.T) {
	unit := &models.Unit{ID: 1, Status: models.UnitStatusVacant}
	machine := NewOccupancyFSM(unit)

	err := machine.Transition(context.Background(), models.UnitStatusVacant)
	assert.NoError(t, err)
	assert.Equal(t, models.UnitStatusVacant, unit.Status)
}

func TestOccupancyFSM_TransitionUnknownStatus(t *testing.T) {
	unit := &models.Unit{ID: 1, Status: models.UnitStatusVacant}
	machine := NewOccupancyFSM(unit)

	err := machine.Transition(context.Background(), "demolished")
	assert.Error(t, err)
}

func TestOccupancyFSM_Can(t *testing.T) {
	machine := NewOccupancyFSM(&models.Unit{Status: models.UnitStatusVacant})
	assert.True(t, machine.Can("occupy"))
	assert.False(t, machine.Can("vacate"))
}
