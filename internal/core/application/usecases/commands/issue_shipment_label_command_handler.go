package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var errNotPacked = errors.New("labels are issued for packed groups")

// IssueShipmentLabelCommandHandler returns the tracking number of a group.
// A labeled group returns its existing number unchanged. A packed group is
// advanced to ready_for_pickup, which issues the label.
type IssueShipmentLabelCommandHandler struct {
	uowFactory UoWFactory
	advancer   shipmentAdvancer
	after      postCommit
}

func NewIssueShipmentLabelCommandHandler(
	uowFactory UoWFactory,
	labels ports.LabelIssuer,
	events EventDispatcher,
	cache ports.ShipmentCacheInvalidator,
	logger *slog.Logger,
) IssueShipmentLabelCommandHandler {
	return IssueShipmentLabelCommandHandler{
		uowFactory: uowFactory,
		advancer: shipmentAdvancer{
			workflow: services.NewShipmentWorkflow(services.NewProductLifecycle()),
			labels:   labels,
		},
		after: postCommit{events: events, cache: cache, logger: logger},
	}
}

func (h IssueShipmentLabelCommandHandler) Handle(ctx context.Context, cmd IssueShipmentLabelCommand) (tracking string, err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return "", err
	}
	if err = requireStaff(cmd.Actor(), "label", shipment.ReadyForPickup.String()); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	group, err := uow.ShipmentGroupRepository().Get(ctx, cmd.GroupID())
	if err != nil {
		return "", err
	}
	if group.IsLabeled() {
		return group.TrackingNumber(), nil
	}
	if group.Status() != shipment.Packed {
		return "", errs.NewInvalidTransitionErrorWithCause(shipment.Graph.EntityType(),
			group.Status().String(), shipment.ReadyForPickup.String(), errNotPacked)
	}

	_, out, err := h.advancer.advance(ctx, uow, group, shipment.ReadyForPickup, cmd.Actor())
	if err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.after.run(ctx, []kernel.UUID{group.ID()}, out.Events)
	return group.TrackingNumber(), nil
}
