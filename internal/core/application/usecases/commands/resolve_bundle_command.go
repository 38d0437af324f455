package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrResolveBundleCommandIsNotConstructed = errors.New(
	"ResolveBundleCommand must be created via NewResolveBundleCommand constructor",
)

// ResolveBundleCommand consolidates sold products into one shipment group.
// Duplicate product ids collapse; a single id opens a single shipment.
type ResolveBundleCommand struct { //nolint:recvcheck //using for validation
	groupID    kernel.UUID
	productIDs []kernel.UUID
	carrier    shipment.Carrier
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewResolveBundleCommand(
	groupID kernel.UUID,
	productIDs []kernel.UUID,
	carrier string,
	actor kernel.Actor,
) (ResolveBundleCommand, error) {
	cmd := ResolveBundleCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setGroupID(groupID),
		cmd.setProductIDs(productIDs),
		cmd.setCarrier(carrier),
		setActor(&cmd.actor, actor),
	); err != nil {
		return ResolveBundleCommand{}, err
	}

	return cmd, nil
}

func (c ResolveBundleCommand) Validate() error {
	return c.guard.Validate(ErrResolveBundleCommandIsNotConstructed)
}

func (c ResolveBundleCommand) GroupID() kernel.UUID {
	return c.groupID
}

func (c ResolveBundleCommand) ProductIDs() []kernel.UUID {
	return slices.Clone(c.productIDs)
}

func (c ResolveBundleCommand) Carrier() shipment.Carrier {
	return c.carrier
}

func (c ResolveBundleCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ResolveBundleCommand) setGroupID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupID = id
	return nil
}

func (c *ResolveBundleCommand) setProductIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("productIDs")
	}
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if !slices.ContainsFunc(unique, id.IsEqual) {
			unique = append(unique, id)
		}
	}
	c.productIDs = unique
	return nil
}

func (c *ResolveBundleCommand) setCarrier(carrier string) error {
	parsed, err := shipment.ParseCarrier(carrier)
	if err != nil {
		return err
	}
	c.carrier = parsed
	return nil
}
