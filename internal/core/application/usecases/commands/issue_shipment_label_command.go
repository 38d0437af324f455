package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrIssueShipmentLabelCommandIsNotConstructed = errors.New(
	"IssueShipmentLabelCommand must be created via NewIssueShipmentLabelCommand constructor",
)

// IssueShipmentLabelCommand asks for the tracking number of a group,
// labeling it if it is packed and not labeled yet.
type IssueShipmentLabelCommand struct { //nolint:recvcheck //using for validation
	groupID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewIssueShipmentLabelCommand(groupID kernel.UUID, actor kernel.Actor) (IssueShipmentLabelCommand, error) {
	cmd := IssueShipmentLabelCommand{guard: guard.NewConstructorGuard()}

	if err := groupID.Validate(); err != nil {
		return IssueShipmentLabelCommand{}, err
	}
	cmd.groupID = groupID
	if err := setActor(&cmd.actor, actor); err != nil {
		return IssueShipmentLabelCommand{}, err
	}

	return cmd, nil
}

func (c IssueShipmentLabelCommand) Validate() error {
	return c.guard.Validate(ErrIssueShipmentLabelCommandIsNotConstructed)
}

func (c IssueShipmentLabelCommand) GroupID() kernel.UUID {
	return c.groupID
}

func (c IssueShipmentLabelCommand) Actor() kernel.Actor {
	return c.actor
}
