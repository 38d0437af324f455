package commands

import (
	"errors"
	"maps"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrIntakeProductCommandIsNotConstructed = errors.New(
	"IntakeProductCommand must be created via NewIntakeProductCommand constructor",
)

// IntakeProductCommand registers a physical item received from a seller.
//
// Example:
//
//	cmd, err := NewIntakeProductCommand(kernel.NewUUID(), sellerID, actor, map[string]string{"brand": "Celine"})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type IntakeProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	ownerID   kernel.UUID
	actor     kernel.Actor
	metadata  map[string]string

	guard guard.ConstructorGuard
}

func NewIntakeProductCommand(
	productID, ownerID kernel.UUID,
	actor kernel.Actor,
	metadata map[string]string,
) (IntakeProductCommand, error) {
	cmd := IntakeProductCommand{
		metadata: maps.Clone(metadata),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setOwnerID(ownerID),
		setActor(&cmd.actor, actor),
	); err != nil {
		return IntakeProductCommand{}, err
	}

	return cmd, nil
}

func (c IntakeProductCommand) Validate() error {
	return c.guard.Validate(ErrIntakeProductCommandIsNotConstructed)
}

func (c IntakeProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c IntakeProductCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c IntakeProductCommand) Actor() kernel.Actor {
	return c.actor
}

func (c IntakeProductCommand) Metadata() map[string]string {
	return maps.Clone(c.metadata)
}

func (c *IntakeProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *IntakeProductCommand) setOwnerID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("ownerID")
	}
	c.ownerID = id
	return nil
}
