package commands

import (
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var staffRoles = []kernel.Role{kernel.RoleStaff, kernel.RoleAdmin}

// requireStaff guards operations that are not edges of a status graph.
func requireStaff(actor kernel.Actor, from, to string) error {
	if !slices.Contains(staffRoles, actor.Role()) {
		return errs.NewUnauthorizedError(actor.Role().String(), from, to)
	}
	return nil
}

func setActor(dst *kernel.Actor, actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	*dst = actor
	return nil
}
