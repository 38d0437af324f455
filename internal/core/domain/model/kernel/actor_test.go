package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("should normalize case and whitespace", func(t *testing.T) {
		role, err := kernel.ParseRole("  Staff ")

		require.NoError(t, err)
		assert.Equal(t, kernel.RoleStaff, role)
	})

	t.Run("should reject unknown roles", func(t *testing.T) {
		_, err := kernel.ParseRole("courier")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should build a valid actor", func(t *testing.T) {
		id := kernel.NewUUID()

		actor, err := kernel.NewActor(id, kernel.RoleAdmin)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, id.IsEqual(actor.ID()))
		assert.Equal(t, kernel.RoleAdmin, actor.Role())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.Role("ghost"))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var actor kernel.Actor

		require.ErrorIs(t, actor.Validate(), kernel.ErrActorIsNotConstructed)
	})
}

func TestSystemActor(t *testing.T) {
	a := kernel.SystemActor()
	b := kernel.SystemActor()

	require.NoError(t, a.Validate())
	assert.Equal(t, kernel.RoleSystem, a.Role())
	assert.True(t, a.ID().IsEqual(b.ID()))
}
