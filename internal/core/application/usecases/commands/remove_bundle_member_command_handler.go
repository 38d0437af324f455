package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RemoveBundleMemberCommandHandler dissolves one membership. The removed
// product goes back to sold; the group keeps its tracking number and is
// dissolved when it loses its last member.
type RemoveBundleMemberCommandHandler struct {
	uowFactory UoWFactory
	workflow   services.ShipmentWorkflow
	after      postCommit
}

func NewRemoveBundleMemberCommandHandler(
	uowFactory UoWFactory,
	events EventDispatcher,
	cache ports.ShipmentCacheInvalidator,
	logger *slog.Logger,
) RemoveBundleMemberCommandHandler {
	return RemoveBundleMemberCommandHandler{
		uowFactory: uowFactory,
		workflow:   services.NewShipmentWorkflow(services.NewProductLifecycle()),
		after:      postCommit{events: events, cache: cache, logger: logger},
	}
}

func (h RemoveBundleMemberCommandHandler) Handle(ctx context.Context, cmd RemoveBundleMemberCommand) (err error) {
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

	group, err := uow.ShipmentGroupRepository().Get(ctx, cmd.GroupID())
	if err != nil {
		return err
	}
	member, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	out, err := h.workflow.RemoveMember(group, member, cmd.Actor())
	if err != nil {
		return err
	}

	if err = persistGroup(ctx, uow, group, []*product.Product{member}, out); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.after.run(ctx, []kernel.UUID{group.ID()}, out.Events)
	return nil
}
