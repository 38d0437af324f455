package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/shipment"
)

// LabelIssuer obtains a tracking number from the group's carrier. Label
// rendering happens outside this service.
type LabelIssuer interface {
	Issue(ctx context.Context, group *shipment.Group) (string, error)
}

// NotificationPublisher forwards a stored notification to the outbound
// stream.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *notification.Notification) error
}

// RelayGuard prevents two relay runs from publishing the same notification.
// Claim reports false when another run already claimed it; Release gives up
// a claim after a failed publish so the next run retries.
type RelayGuard interface {
	Claim(ctx context.Context, notificationID kernel.UUID) (bool, error)
	Release(ctx context.Context, notificationID kernel.UUID) error
}

// ShipmentCacheInvalidator drops cached read models of a group after a
// write commits.
type ShipmentCacheInvalidator interface {
	Invalidate(ctx context.Context, groupID kernel.UUID) error
}
