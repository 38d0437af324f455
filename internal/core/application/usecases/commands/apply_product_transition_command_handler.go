package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ApplyProductTransitionCommandHandler is the inbound entry point for single
// product transitions, used by staff actions and by the marketplace sales
// consumer.
//
// Shipment-stage edges are refused here for every product, bundled or not;
// resolveBundle and advanceShipment own them. A return of a product in an
// open group first splits the product off the group (reverting it to sold)
// before applying sold -> returned, all in one transaction.
type ApplyProductTransitionCommandHandler struct {
	uowFactory UoWFactory
	mover      productMover
	workflow   services.ShipmentWorkflow
	after      postCommit
}

var errNoShipmentGroup = errors.New("shipment stages require a shipment group")

func NewApplyProductTransitionCommandHandler(
	uowFactory UoWFactory,
	events EventDispatcher,
	cache ports.ShipmentCacheInvalidator,
	logger *slog.Logger,
) ApplyProductTransitionCommandHandler {
	return ApplyProductTransitionCommandHandler{
		uowFactory: uowFactory,
		mover:      newProductMover(logger),
		workflow:   services.NewShipmentWorkflow(services.NewProductLifecycle()),
		after:      postCommit{events: events, cache: cache, logger: logger},
	}
}

func (h ApplyProductTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyProductTransitionCommand) (err error) {
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

	p, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	group, err := uow.ShipmentGroupRepository().FindOpenByProduct(ctx, p.ID())
	if err != nil {
		return err
	}

	var (
		out     services.Outcome
		touched []kernel.UUID
	)
	from, target := p.Status(), cmd.Target()

	// Shipment stages are entered only through a shipment group, which owns
	// the tracking number.
	if product.IsShipmentEdge(from, target) {
		cause := errNoShipmentGroup
		if group != nil {
			cause = fmt.Errorf("product follows shipment group %s", group.ID())
		}
		return errs.NewInvalidTransitionErrorWithCause(product.Graph.EntityType(), from.String(), target.String(), cause)
	}

	if group != nil {
		if target == product.Returned && product.Graph.Allows(from, target) {
			split, splitErr := h.workflow.RemoveMember(group, p, cmd.Actor())
			if splitErr != nil {
				return splitErr
			}
			if err = uow.ShipmentGroupRepository().Update(ctx, group); err != nil {
				return err
			}
			if err = uow.AuditRepository().Append(ctx, split.Entries...); err != nil {
				return err
			}
			out.Events = append(out.Events, split.Events...)
			touched = append(touched, group.ID())
		}
	}

	moved, err := h.mover.move(ctx, uow, p, services.ProductTransition{
		To:         target,
		Actor:      cmd.Actor(),
		LocationID: cmd.LocationID(),
	})
	if err != nil {
		return err
	}
	out.Events = append(out.Events, moved.Events...)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.after.run(ctx, touched, out.Events)
	return nil
}
