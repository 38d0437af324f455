package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleResolver_Resolve(t *testing.T) {
	resolver := services.NewBundleResolver()
	owner := kernel.NewUUID()

	t.Run("should open bundle for sold products of one owner", func(t *testing.T) {
		a, b := productAt(t, owner, product.Sold), productAt(t, owner, product.Sold)
		groupID := kernel.NewUUID()

		g, err := resolver.Resolve(groupID, shipment.CarrierSagawa, []*product.Product{a, b, a}, nil)

		require.NoError(t, err)
		assert.True(t, g.ID().IsEqual(groupID))
		assert.True(t, g.OwnerID().IsEqual(owner))
		assert.Equal(t, shipment.Workstation, g.Status())
		assert.Equal(t, shipment.KindBundled, g.Kind())
		assert.Len(t, g.Members(), 2)
	})

	t.Run("should collapse duplicates into single shipment", func(t *testing.T) {
		a := productAt(t, owner, product.Sold)

		g, err := resolver.Resolve(kernel.NewUUID(), shipment.CarrierSagawa, []*product.Product{a, a}, nil)

		require.NoError(t, err)
		assert.Equal(t, shipment.KindSingle, g.Kind())
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := resolver.Resolve(kernel.NewUUID(), shipment.CarrierSagawa, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject member of open group first", func(t *testing.T) {
		a := productAt(t, owner, product.Picking)
		existing := kernel.NewUUID()

		_, err := resolver.Resolve(kernel.NewUUID(), shipment.CarrierSagawa, []*product.Product{a},
			map[kernel.UUID]kernel.UUID{a.ID(): existing})

		require.ErrorIs(t, err, errs.ErrAlreadyBundled)
		assert.Contains(t, err.Error(), existing.String())
	})

	t.Run("should reject unsold product", func(t *testing.T) {
		a, b := productAt(t, owner, product.Sold), productAt(t, owner, product.Listed)

		_, err := resolver.Resolve(kernel.NewUUID(), shipment.CarrierSagawa, []*product.Product{a, b}, nil)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject mixed owners", func(t *testing.T) {
		a, b := productAt(t, owner, product.Sold), productAt(t, kernel.NewUUID(), product.Sold)

		_, err := resolver.Resolve(kernel.NewUUID(), shipment.CarrierSagawa, []*product.Product{a, b}, nil)

		require.ErrorIs(t, err, errs.ErrOwnerMismatch)
	})
}
