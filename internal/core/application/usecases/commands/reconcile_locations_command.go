package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReconcileLocationsCommandIsNotConstructed = errors.New(
	"ReconcileLocationsCommand must be created via NewReconcileLocationsCommand constructor",
)

// ReconcileLocationsCommand recounts every location from the products that
// reference it.
type ReconcileLocationsCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileLocationsCommand() ReconcileLocationsCommand {
	return ReconcileLocationsCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileLocationsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileLocationsCommandIsNotConstructed)
}
