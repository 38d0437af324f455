package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

type GetShipmentQuery struct {
	groupID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(groupID kernel.UUID) (GetShipmentQuery, error) {
	if err := groupID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{groupID: groupID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) GroupID() kernel.UUID {
	return q.groupID
}

// GetShipmentQueryResponse is also the cached representation, so every
// field carries a json tag.
type GetShipmentQueryResponse struct {
	ID             kernel.UUID   `json:"id"`
	OwnerID        kernel.UUID   `json:"ownerId"`
	Status         string        `json:"status"`
	Kind           string        `json:"kind"`
	Carrier        string        `json:"carrier"`
	TrackingNumber string        `json:"trackingNumber,omitempty"`
	TrackingURL    string        `json:"trackingUrl,omitempty"`
	Members        []kernel.UUID `json:"members"`
	Version        int           `json:"version"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// NewGetShipmentQueryResponse renders a loaded group the way the read model
// does, for callers that already hold the aggregate.
func NewGetShipmentQueryResponse(g *shipment.Group) *GetShipmentQueryResponse {
	return &GetShipmentQueryResponse{
		ID:             g.ID(),
		OwnerID:        g.OwnerID(),
		Status:         g.Status().String(),
		Kind:           string(g.Kind()),
		Carrier:        g.Carrier().String(),
		TrackingNumber: g.TrackingNumber(),
		TrackingURL:    g.TrackingURL(),
		Members:        append([]kernel.UUID{}, g.Members()...),
		Version:        g.Version(),
		UpdatedAt:      g.UpdatedAt().UTC(),
	}
}
