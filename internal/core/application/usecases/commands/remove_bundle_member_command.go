package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveBundleMemberCommandIsNotConstructed = errors.New(
	"RemoveBundleMemberCommand must be created via NewRemoveBundleMemberCommand constructor",
)

// RemoveBundleMemberCommand splits one product off a shipment group.
type RemoveBundleMemberCommand struct { //nolint:recvcheck //using for validation
	groupID   kernel.UUID
	productID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewRemoveBundleMemberCommand(groupID, productID kernel.UUID, actor kernel.Actor) (RemoveBundleMemberCommand, error) {
	cmd := RemoveBundleMemberCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		groupID.Validate(),
		productID.Validate(),
		setActor(&cmd.actor, actor),
	); err != nil {
		return RemoveBundleMemberCommand{}, err
	}
	cmd.groupID = groupID
	cmd.productID = productID

	return cmd, nil
}

func (c RemoveBundleMemberCommand) Validate() error {
	return c.guard.Validate(ErrRemoveBundleMemberCommandIsNotConstructed)
}

func (c RemoveBundleMemberCommand) GroupID() kernel.UUID {
	return c.groupID
}

func (c RemoveBundleMemberCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c RemoveBundleMemberCommand) Actor() kernel.Actor {
	return c.actor
}
