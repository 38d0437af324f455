package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
	"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
)

// AdvanceShipmentCommand moves a shipment group and all of its members to the
// next stage.
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	groupID kernel.UUID
	target  shipment.Status
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdvanceShipmentCommand(groupID kernel.UUID, target shipment.Status, actor kernel.Actor) (AdvanceShipmentCommand, error) {
	cmd := AdvanceShipmentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setGroupID(groupID),
		cmd.setTarget(target),
		setActor(&cmd.actor, actor),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

func (c AdvanceShipmentCommand) GroupID() kernel.UUID {
	return c.groupID
}

func (c AdvanceShipmentCommand) Target() shipment.Status {
	return c.target
}

func (c AdvanceShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AdvanceShipmentCommand) setGroupID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupID = id
	return nil
}

func (c *AdvanceShipmentCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
