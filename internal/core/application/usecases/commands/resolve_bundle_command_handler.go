package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ResolveBundleCommandHandler opens a shipment group for sold products and
// moves every member to picking in the same transaction. Concurrent
// resolutions claiming the same product are stopped by the open-membership
// unique index and surface as AlreadyBundled.
type ResolveBundleCommandHandler struct {
	uowFactory UoWFactory
	resolver   services.BundleResolver
	workflow   services.ShipmentWorkflow
	after      postCommit
}

func NewResolveBundleCommandHandler(
	uowFactory UoWFactory,
	events EventDispatcher,
	cache ports.ShipmentCacheInvalidator,
	logger *slog.Logger,
) ResolveBundleCommandHandler {
	return ResolveBundleCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewBundleResolver(),
		workflow:   services.NewShipmentWorkflow(services.NewProductLifecycle()),
		after:      postCommit{events: events, cache: cache, logger: logger},
	}
}

func (h ResolveBundleCommandHandler) Handle(ctx context.Context, cmd ResolveBundleCommand) (err error) {
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

	productRepo := uow.ProductRepository()
	groupRepo := uow.ShipmentGroupRepository()

	candidates, err := productRepo.GetMany(ctx, cmd.ProductIDs())
	if err != nil {
		return err
	}
	open, err := groupRepo.OpenMemberships(ctx, cmd.ProductIDs())
	if err != nil {
		return err
	}

	group, err := h.resolver.Resolve(cmd.GroupID(), cmd.Carrier(), candidates, open)
	if err != nil {
		return err
	}
	out, err := h.workflow.Open(group, candidates, cmd.Actor())
	if err != nil {
		return err
	}

	if err = groupRepo.Add(ctx, group); err != nil {
		return err
	}
	for _, p := range candidates {
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	if err = uow.AuditRepository().Append(ctx, out.Entries...); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.after.run(ctx, []kernel.UUID{group.ID()}, out.Events)
	return nil
}
