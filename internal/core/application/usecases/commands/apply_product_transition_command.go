package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyProductTransitionCommandIsNotConstructed = errors.New(
	"ApplyProductTransitionCommand must be created via NewApplyProductTransitionCommand constructor",
)

// ApplyProductTransitionCommand moves one product to target. LocationID is
// required when entering storage and optional when listing.
//
// Example:
//
//	cmd, err := NewApplyProductTransitionCommand(productID, product.Storage, actor, &shelfID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrCapacityExceeded) {
//	    // pick another shelf
//	}
type ApplyProductTransitionCommand struct { //nolint:recvcheck //using for validation
	productID  kernel.UUID
	target     product.Status
	actor      kernel.Actor
	locationID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewApplyProductTransitionCommand(
	productID kernel.UUID,
	target product.Status,
	actor kernel.Actor,
	locationID *kernel.UUID,
) (ApplyProductTransitionCommand, error) {
	cmd := ApplyProductTransitionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setTarget(target),
		setActor(&cmd.actor, actor),
		cmd.setLocationID(locationID),
	); err != nil {
		return ApplyProductTransitionCommand{}, err
	}

	return cmd, nil
}

func (c ApplyProductTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyProductTransitionCommandIsNotConstructed)
}

func (c ApplyProductTransitionCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c ApplyProductTransitionCommand) Target() product.Status {
	return c.target
}

func (c ApplyProductTransitionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ApplyProductTransitionCommand) LocationID() *kernel.UUID {
	return c.locationID
}

func (c *ApplyProductTransitionCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *ApplyProductTransitionCommand) setTarget(target product.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ApplyProductTransitionCommand) setLocationID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	loc := *id
	c.locationID = &loc
	return nil
}
