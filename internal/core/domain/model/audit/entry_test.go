package audit_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("should capture actor and context copy", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStaff)
		require.NoError(t, err)
		ctx := map[string]string{"location": "A-01"}

		e, err := audit.NewEntry("product", kernel.NewUUID(), "inspection", "storage", actor, ctx)
		ctx["location"] = "B-02"

		require.NoError(t, err)
		assert.True(t, e.ActorID().IsEqual(actor.ID()))
		assert.Equal(t, "A-01", e.Context()["location"])
		assert.False(t, e.ID().IsZero())
	})

	t.Run("should reject unconstructed actor", func(t *testing.T) {
		_, err := audit.NewEntry("product", kernel.NewUUID(), "a", "b", kernel.Actor{}, nil)

		require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
	})
}
