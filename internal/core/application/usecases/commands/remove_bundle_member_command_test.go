package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoveBundleMemberCommand_ValidInput(t *testing.T) {
	groupID, productID := kernel.NewUUID(), kernel.NewUUID()
	staff := mustActor(kernel.RoleStaff)

	cmd, err := commands.NewRemoveBundleMemberCommand(groupID, productID, staff)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, groupID, cmd.GroupID())
	assert.Equal(t, productID, cmd.ProductID())
	assert.Equal(t, staff, cmd.Actor())
}

func TestNewRemoveBundleMemberCommand_InvalidInput(t *testing.T) {
	staff := mustActor(kernel.RoleStaff)

	testCases := []struct {
		name      string
		groupID   kernel.UUID
		productID kernel.UUID
		actor     kernel.Actor
		wantError error
	}{
		{"zero group id", kernel.UUID{}, kernel.NewUUID(), staff, kernel.ErrUUIDIsNotConstructed},
		{"zero product id", kernel.NewUUID(), kernel.UUID{}, staff, kernel.ErrUUIDIsNotConstructed},
		{"unconstructed actor", kernel.NewUUID(), kernel.NewUUID(), kernel.Actor{}, kernel.ErrActorIsNotConstructed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := commands.NewRemoveBundleMemberCommand(tc.groupID, tc.productID, tc.actor)

			require.ErrorIs(t, err, tc.wantError)
			assert.ErrorIs(t, cmd.Validate(), commands.ErrRemoveBundleMemberCommandIsNotConstructed)
		})
	}
}

func TestRemoveBundleMemberCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.RemoveBundleMemberCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrRemoveBundleMemberCommandIsNotConstructed)
}
