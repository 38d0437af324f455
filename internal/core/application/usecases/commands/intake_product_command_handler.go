package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

// IntakeProductCommandHandler creates products at intake. Intake is not an
// edge of the product graph, so the role check happens here.
type IntakeProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewIntakeProductCommandHandler(uowFactory ProductUoWFactory) IntakeProductCommandHandler {
	return IntakeProductCommandHandler{uowFactory: uowFactory}
}

func (h IntakeProductCommandHandler) Handle(ctx context.Context, cmd IntakeProductCommand) (err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}
	if err = requireStaff(cmd.Actor(), "", product.Intake.String()); err != nil {
		return err
	}

	p, err := product.NewProduct(cmd.ProductID(), cmd.OwnerID(), cmd.Metadata())
	if err != nil {
		return err
	}
	entry, err := audit.NewEntry(event.EntityProduct, p.ID(), "", p.Status().String(), cmd.Actor(), nil)
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

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
