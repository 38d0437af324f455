package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
)

// AuditRepository is append-only.
type AuditRepository interface {
	Append(ctx context.Context, entries ...audit.Entry) error
}
