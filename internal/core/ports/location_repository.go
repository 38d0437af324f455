package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
)

// LocationRepository persists storage slots.
type LocationRepository interface {
	// Add fails with errs.ErrValueIsInvalid when the code is taken.
	Add(ctx context.Context, aggregate *location.Location) error

	Update(ctx context.Context, aggregate *location.Location) error

	Get(ctx context.Context, id kernel.UUID) (*location.Location, error)

	// GetForUpdate loads the location and locks its row until the
	// transaction ends. Only this one row is locked.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*location.Location, error)

	List(ctx context.Context) ([]*location.Location, error)
}
