package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RelayNotificationsCommandHandler publishes unpublished notifications and
// stamps them as published. Delivery is at least once: a notification is
// only stamped after the publisher accepted it, and the relay guard keeps
// concurrent runs from publishing the same row twice.
type RelayNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.NotificationPublisher
	relayGuard ports.RelayGuard
	logger     *slog.Logger
}

func NewRelayNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	publisher ports.NotificationPublisher,
	relayGuard ports.RelayGuard,
	logger *slog.Logger,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		relayGuard: relayGuard,
		logger:     logger,
	}
}

// Handle returns how many notifications were published.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (published int, err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	pending, err := repo.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	for _, n := range pending {
		claimed, claimErr := h.relayGuard.Claim(ctx, n.ID())
		if claimErr != nil {
			h.logger.WarnContext(ctx, "relay claim failed", "notification_id", n.ID().String(), "error", claimErr)
			continue
		}
		if !claimed {
			continue
		}

		if pubErr := h.publisher.Publish(ctx, n); pubErr != nil {
			h.logger.ErrorContext(ctx, "failed to publish notification",
				"notification_id", n.ID().String(), "kind", n.Kind().String(), "error", pubErr)
			if relErr := h.relayGuard.Release(ctx, n.ID()); relErr != nil {
				h.logger.WarnContext(ctx, "relay release failed", "notification_id", n.ID().String(), "error", relErr)
			}
			continue
		}

		n.MarkPublished(time.Now())
		if err = repo.MarkPublished(ctx, n.ID(), *n.PublishedAt()); err != nil {
			return published, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return published, nil
}
