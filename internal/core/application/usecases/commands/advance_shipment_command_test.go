package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceShipmentCommand_ValidInput(t *testing.T) {
	// Arrange
	groupID := kernel.NewUUID()
	staff := mustActor(kernel.RoleStaff)

	// Act
	cmd, err := commands.NewAdvanceShipmentCommand(groupID, shipment.Shipped, staff)

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, groupID, cmd.GroupID())
	assert.Equal(t, shipment.Shipped, cmd.Target())
	assert.Equal(t, staff, cmd.Actor())
}

func TestNewAdvanceShipmentCommand_InvalidInput(t *testing.T) {
	staff := mustActor(kernel.RoleStaff)

	testCases := []struct {
		name      string
		groupID   kernel.UUID
		target    shipment.Status
		actor     kernel.Actor
		wantError error
	}{
		{"zero group id", kernel.UUID{}, shipment.Packed, staff, kernel.ErrUUIDIsNotConstructed},
		{"unknown target", kernel.NewUUID(), shipment.Unknown, staff, errs.ErrValueIsInvalid},
		{"out of range target", kernel.NewUUID(), shipment.Status(99), staff, errs.ErrValueIsInvalid},
		{"unconstructed actor", kernel.NewUUID(), shipment.Packed, kernel.Actor{}, kernel.ErrActorIsNotConstructed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := commands.NewAdvanceShipmentCommand(tc.groupID, tc.target, tc.actor)

			require.ErrorIs(t, err, tc.wantError)
			assert.ErrorIs(t, cmd.Validate(), commands.ErrAdvanceShipmentCommandIsNotConstructed)
		})
	}
}

func TestAdvanceShipmentCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AdvanceShipmentCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrAdvanceShipmentCommandIsNotConstructed)
}
