package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentGroupRepository persists shipment groups together with their
// memberships.
type ShipmentGroupRepository interface {
	// Add fails with errs.ErrAlreadyBundled when a member is already claimed
	// by another open group.
	Add(ctx context.Context, aggregate *shipment.Group) error

	// Update writes status, tracking number and removed memberships under
	// the same optimistic version check as products.
	Update(ctx context.Context, aggregate *shipment.Group) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Group, error)

	// FindOpenByProduct returns the open group holding productID, or nil
	// when there is none.
	FindOpenByProduct(ctx context.Context, productID kernel.UUID) (*shipment.Group, error)

	// OpenMemberships maps each of productIDs that belongs to an open group
	// to that group's id.
	OpenMemberships(ctx context.Context, productIDs []kernel.UUID) (map[kernel.UUID]kernel.UUID, error)
}
