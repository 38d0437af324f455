package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateLocationCommandIsNotConstructed = errors.New(
	"CreateLocationCommand must be created via NewCreateLocationCommand constructor",
)

// CreateLocationCommand adds a storage slot.
type CreateLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	code       string
	capacity   int
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateLocationCommand(locationID kernel.UUID, code string, capacity int, actor kernel.Actor) (CreateLocationCommand, error) {
	cmd := CreateLocationCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setCode(code),
		cmd.setCapacity(capacity),
		setActor(&cmd.actor, actor),
	); err != nil {
		return CreateLocationCommand{}, err
	}

	return cmd, nil
}

func (c CreateLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateLocationCommandIsNotConstructed)
}

func (c CreateLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c CreateLocationCommand) Code() string {
	return c.code
}

func (c CreateLocationCommand) Capacity() int {
	return c.capacity
}

func (c CreateLocationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateLocationCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

func (c *CreateLocationCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateLocationCommand) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 0, "unbounded")
	}
	c.capacity = capacity
	return nil
}
