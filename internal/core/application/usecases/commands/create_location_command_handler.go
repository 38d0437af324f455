package commands

import (
	"context"
	"strconv"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/pkg/errs"
)

type CreateLocationCommandHandler struct {
	uowFactory LocationUoWFactory
}

func NewCreateLocationCommandHandler(uowFactory LocationUoWFactory) CreateLocationCommandHandler {
	return CreateLocationCommandHandler{uowFactory: uowFactory}
}

func (h CreateLocationCommandHandler) Handle(ctx context.Context, cmd CreateLocationCommand) (err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}
	if err = requireStaff(cmd.Actor(), "", "location"); err != nil {
		return err
	}

	l, err := location.NewLocation(cmd.LocationID(), cmd.Code(), cmd.Capacity())
	if err != nil {
		return err
	}
	entry, err := audit.NewEntry(event.EntityLocation, l.ID(), "", strconv.Itoa(l.CurrentCount()), cmd.Actor(),
		map[string]string{"op": "create", "code": l.Code(), "capacity": strconv.Itoa(l.Capacity())})
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LocationRepository().Add(ctx, l); err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
