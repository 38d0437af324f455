package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// postCommit runs the side effects that must only happen once a transaction
// has committed. Failures are logged and never reach the caller.
type postCommit struct {
	events EventDispatcher
	cache  ports.ShipmentCacheInvalidator
	logger *slog.Logger
}

func (p postCommit) run(ctx context.Context, groupIDs []kernel.UUID, events []event.Event) {
	if p.cache != nil {
		for _, id := range groupIDs {
			if err := p.cache.Invalidate(ctx, id); err != nil {
				p.logger.WarnContext(ctx, "failed to invalidate shipment cache",
					"group_id", id.String(), "error", err)
			}
		}
	}
	if p.events != nil && len(events) > 0 {
		p.events.Dispatch(ctx, events)
	}
}
