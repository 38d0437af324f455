package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler sets the read flag on behalf of the
// recipient. Marking an already read notification is a no-op.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory}
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) (err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	changed, err := n.MarkRead(cmd.Actor())
	if err != nil || !changed {
		return err
	}
	if err = repo.MarkRead(ctx, n.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
