package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository persists product aggregates.
type ProductRepository interface {
	// Add persists a new product at version 0.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update writes the product if the stored version still equals
	// aggregate.Version() and bumps it. A stale version fails with
	// errs.ErrConflict.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get returns errs.ErrObjectNotFound when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany returns the products in the order of ids. Any unknown id fails
	// the whole call with errs.ErrObjectNotFound.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)

	// CountByLocation returns how many products currently reference each
	// location. Locations without products are absent from the map.
	CountByLocation(ctx context.Context) (map[kernel.UUID]int, error)
}
