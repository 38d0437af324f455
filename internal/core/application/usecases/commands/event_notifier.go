package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// EventNotifier is the EventDispatcher used in production. It stores one
// notification per recipient of each event in its own transaction. Failures
// are logged as DispatchFailure and dropped; the transition that produced
// the event has already committed.
type EventNotifier struct {
	uowFactory NotificationUoWFactory
	dispatcher services.NotificationDispatcher
	logger     *slog.Logger
}

func NewEventNotifier(uowFactory NotificationUoWFactory, logger *slog.Logger) *EventNotifier {
	return &EventNotifier{
		uowFactory: uowFactory,
		dispatcher: services.NewNotificationDispatcher(),
		logger:     logger,
	}
}

func (n *EventNotifier) Dispatch(ctx context.Context, events []event.Event) {
	for _, e := range events {
		n.dispatch(ctx, e)
	}
}

func (n *EventNotifier) dispatch(ctx context.Context, e event.Event) {
	notifications, failures := n.dispatcher.Dispatch(e)
	for _, f := range failures {
		n.logger.ErrorContext(ctx, "notification dispatch failed",
			"kind", e.Kind.String(), "entity_id", e.EntityID.String(), "error", f)
	}
	if len(notifications) == 0 {
		return
	}

	uow := n.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		n.logFailure(ctx, e, err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	for _, notif := range notifications {
		inserted, err := repo.AddIfAbsent(ctx, notif)
		if err != nil {
			n.logFailure(ctx, e, err)
			return
		}
		if !inserted {
			n.logger.DebugContext(ctx, "notification already stored", "notification_id", notif.ID().String())
		}
	}

	if err := uow.Commit(ctx); err != nil {
		n.logFailure(ctx, e, err)
	}
}

func (n *EventNotifier) logFailure(ctx context.Context, e event.Event, err error) {
	for _, r := range e.Recipients() {
		n.logger.ErrorContext(ctx, "notification dispatch failed",
			"kind", e.Kind.String(), "entity_id", e.EntityID.String(),
			"error", errs.NewDispatchFailureError(e.Kind.String(), r, err))
	}
}
