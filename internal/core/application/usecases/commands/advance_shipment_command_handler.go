package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AdvanceShipmentCommandHandler advances a group with an atomic cascade to
// its members. Two concurrent advances of the same group serialize on the
// group version: the loser fails with Conflict and nothing it did persists.
// Advancing to the current status succeeds without writing anything.
type AdvanceShipmentCommandHandler struct {
	uowFactory UoWFactory
	advancer   shipmentAdvancer
	after      postCommit
}

func NewAdvanceShipmentCommandHandler(
	uowFactory UoWFactory,
	labels ports.LabelIssuer,
	events EventDispatcher,
	cache ports.ShipmentCacheInvalidator,
	logger *slog.Logger,
) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		advancer: shipmentAdvancer{
			workflow: services.NewShipmentWorkflow(services.NewProductLifecycle()),
			labels:   labels,
		},
		after: postCommit{events: events, cache: cache, logger: logger},
	}
}

// Handle returns the group as it stands after the command, which for an
// advance to the current status is the unchanged group.
func (h AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) (group *shipment.Group, err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	group, err = uow.ShipmentGroupRepository().Get(ctx, cmd.GroupID())
	if err != nil {
		return nil, err
	}

	changed, out, err := h.advancer.advance(ctx, uow, group, cmd.Target(), cmd.Actor())
	if err != nil {
		return nil, err
	}
	if !changed {
		return group, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.after.run(ctx, []kernel.UUID{group.ID()}, out.Events)
	return group, nil
}
