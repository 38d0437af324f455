package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationRepository persists notifications. Ids are deterministic, so
// inserts are idempotent.
type NotificationRepository interface {
	// AddIfAbsent inserts the notification unless one with the same id
	// exists. It reports whether a row was inserted.
	AddIfAbsent(ctx context.Context, aggregate *notification.Notification) (bool, error)

	// MarkRead and MarkPublished each write one column and leave the other
	// untouched.
	MarkRead(ctx context.Context, id kernel.UUID) error
	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ListUnpublished returns at most limit notifications not yet forwarded
	// to the outbound stream, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error)
}
