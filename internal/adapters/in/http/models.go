package http

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ActorParams carries the caller identity set by the gateway.
type ActorParams struct {
	XActorId   openapi_types.UUID
	XActorRole string
}

type ListNotificationsParams struct {
	ActorParams
	UnreadOnly *bool
}

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type NewProduct struct {
	Id       *openapi_types.UUID `json:"id,omitempty"`
	OwnerId  openapi_types.UUID  `json:"ownerId"`
	Metadata map[string]string   `json:"metadata,omitempty"`
}

type ProductTransition struct {
	Target     string              `json:"target"`
	LocationId *openapi_types.UUID `json:"locationId,omitempty"`
}

type NewLocation struct {
	Code     string `json:"code"`
	Capacity int    `json:"capacity"`
}

type NewShipment struct {
	ProductIds []openapi_types.UUID `json:"productIds"`
	Carrier    *string              `json:"carrier,omitempty"`
}

type ShipmentTransition struct {
	Target string `json:"target"`
}

type Label struct {
	TrackingNumber string `json:"trackingNumber"`
	TrackingUrl    string `json:"trackingUrl"`
}
