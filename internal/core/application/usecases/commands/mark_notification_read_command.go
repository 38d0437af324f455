package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(notificationID kernel.UUID, actor kernel.Actor) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(notificationID.Validate(), setActor(&cmd.actor, actor)); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	cmd.notificationID = notificationID

	return cmd, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

func (c MarkNotificationReadCommand) Actor() kernel.Actor {
	return c.actor
}
