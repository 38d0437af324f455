// Package event carries the domain events produced by committed transitions.
// Events are plain values; the notification dispatcher turns them into
// per-recipient notifications once the transaction that produced them has
// committed.
package event

import (
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Kind names what happened.
type Kind string

const (
	ProductInspected       Kind = "product_inspected"
	ProductStored          Kind = "product_stored"
	ProductListed          Kind = "product_listed"
	ProductSold            Kind = "product_sold"
	ProductDisposed        Kind = "product_disposed"
	ProductReturned        Kind = "product_returned"
	ShipmentCreated        Kind = "shipment_created"
	ShipmentPacked         Kind = "shipment_packed"
	ShipmentReadyForPickup Kind = "shipment_ready_for_pickup"
	ShipmentShipped        Kind = "shipment_shipped"
	ShipmentSplit          Kind = "shipment_split"
)

// Entity types used by events and audit entries.
const (
	EntityProduct       = "product"
	EntityShipmentGroup = "shipment_group"
	EntityLocation      = "location"
	EntityNotification  = "notification"
)

var kinds = []Kind{
	ProductInspected, ProductStored, ProductListed, ProductSold, ProductDisposed, ProductReturned,
	ShipmentCreated, ShipmentPacked, ShipmentReadyForPickup, ShipmentShipped, ShipmentSplit,
}

// Kinds lists every event kind.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

func (k Kind) IsValid() bool {
	return slices.Contains(kinds, k)
}

func (k Kind) String() string {
	return string(k)
}

// Event is one fact worth telling the owners about.
type Event struct {
	Kind       Kind
	EntityType string
	EntityID   kernel.UUID
	OwnerIDs   []kernel.UUID
	Payload    map[string]string
	OccurredAt time.Time
}

// NewProductEvent builds an event addressed to the single owner of a product.
func NewProductEvent(kind Kind, productID, ownerID kernel.UUID, payload map[string]string) Event {
	return Event{
		Kind:       kind,
		EntityType: EntityProduct,
		EntityID:   productID,
		OwnerIDs:   []kernel.UUID{ownerID},
		Payload:    maps.Clone(payload),
		OccurredAt: time.Now().UTC(),
	}
}

// NewShipmentEvent builds an event about a group. owners may repeat; the
// dispatcher collapses them.
func NewShipmentEvent(kind Kind, groupID kernel.UUID, owners []kernel.UUID, payload map[string]string) Event {
	return Event{
		Kind:       kind,
		EntityType: EntityShipmentGroup,
		EntityID:   groupID,
		OwnerIDs:   slices.Clone(owners),
		Payload:    maps.Clone(payload),
		OccurredAt: time.Now().UTC(),
	}
}

// Recipients returns the distinct non-zero owners in first-seen order.
func (e Event) Recipients() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(e.OwnerIDs))
	for _, id := range e.OwnerIDs {
		if id.IsZero() || slices.ContainsFunc(out, id.IsEqual) {
			continue
		}
		out = append(out, id)
	}
	return out
}
