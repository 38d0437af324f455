package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListLocationsQueryIsNotConstructed = errors.New(
	"ListLocationsQuery must be created via NewListLocationsQuery constructor",
)

// ListLocationsQuery returns every storage location with its occupancy,
// ordered by code.
type ListLocationsQuery struct {
	guard guard.ConstructorGuard
}

func NewListLocationsQuery() ListLocationsQuery {
	return ListLocationsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListLocationsQuery) Validate() error {
	return q.guard.Validate(ErrListLocationsQueryIsNotConstructed)
}

type ListLocationsQueryResponse struct {
	ID           kernel.UUID `json:"id"`
	Code         string      `json:"code"`
	Capacity     int         `json:"capacity"`
	CurrentCount int         `json:"currentCount"`
	Free         int         `json:"free"`
}
