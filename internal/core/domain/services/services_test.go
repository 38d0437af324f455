package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func staffActor(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStaff)
	require.NoError(t, err)
	return a
}

func productAt(t *testing.T, owner kernel.UUID, status product.Status) *product.Product {
	t.Helper()
	var loc *kernel.UUID
	if status.HoldsLocation() {
		id := kernel.NewUUID()
		loc = &id
	}
	now := time.Now().UTC()
	p, err := product.RestoreProduct(kernel.NewUUID(), owner, status, loc, nil, 1, now, now)
	require.NoError(t, err)
	return p
}

func ids(products ...*product.Product) []kernel.UUID {
	out := make([]kernel.UUID, len(products))
	for i, p := range products {
		out[i] = p.ID()
	}
	return out
}

func groupAt(t *testing.T, status shipment.Status, tracking string, members ...*product.Product) *shipment.Group {
	t.Helper()
	now := time.Now().UTC()
	g, err := shipment.RestoreGroup(kernel.NewUUID(), members[0].OwnerID(), status, shipment.CarrierYamato,
		tracking, ids(members...), 1, now, now)
	require.NoError(t, err)
	return g
}
