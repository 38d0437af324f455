package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationLedger(t *testing.T) {
	ledger := services.NewLocationLedger()

	t.Run("should audit reserve with counts", func(t *testing.T) {
		l, err := location.NewLocation(kernel.NewUUID(), "A-1", 1)
		require.NoError(t, err)
		productID := kernel.NewUUID()

		entry, err := ledger.Reserve(l, productID, staffActor(t))

		require.NoError(t, err)
		assert.Equal(t, "location", entry.EntityType())
		assert.Equal(t, "0", entry.FromStatus())
		assert.Equal(t, "1", entry.ToStatus())
		assert.Equal(t, productID.String(), entry.Context()["product_id"])
	})

	t.Run("should refuse full location", func(t *testing.T) {
		l, err := location.RestoreLocation(kernel.NewUUID(), "A-2", 1, 1, time.Now())
		require.NoError(t, err)

		_, err = ledger.Reserve(l, kernel.NewUUID(), staffActor(t))

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 1, l.CurrentCount())
	})

	t.Run("should report release underflow", func(t *testing.T) {
		l, err := location.NewLocation(kernel.NewUUID(), "A-3", 1)
		require.NoError(t, err)

		_, released, err := ledger.Release(l, kernel.NewUUID(), staffActor(t))

		require.NoError(t, err)
		assert.False(t, released)
		assert.Zero(t, l.CurrentCount())
	})

	t.Run("should release occupied slot", func(t *testing.T) {
		l, err := location.RestoreLocation(kernel.NewUUID(), "A-4", 2, 2, time.Now())
		require.NoError(t, err)

		entry, released, err := ledger.Release(l, kernel.NewUUID(), staffActor(t))

		require.NoError(t, err)
		assert.True(t, released)
		assert.Equal(t, "1", entry.ToStatus())
	})
}
