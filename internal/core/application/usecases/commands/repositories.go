// Package commands contains the fulfillment operations that modify state.
// Every handler follows the same pattern: validate the command, open one
// unit of work, load and mutate aggregates through the domain services,
// persist, commit, then dispatch the produced events.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	ShipmentRepoFactory interface {
		ShipmentGroupRepository() ports.ShipmentGroupRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// ProductUoW covers product writes that may move storage occupancy.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
		LocationRepoFactory
		AuditRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// LocationUoW covers location management.
	LocationUoW interface {
		TxManager
		LocationRepoFactory
		ProductRepoFactory
		AuditRepoFactory
	}

	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// NotificationUoW covers notification storage and relay.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// UoW spans products, locations and shipment groups. Used by every
	// command that may cascade from a group to its members.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   group, err := uow.ShipmentGroupRepository().Get(ctx, id)
	//   members, err := uow.ProductRepository().GetMany(ctx, group.Members())
	//   ...
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ProductRepoFactory
		LocationRepoFactory
		ShipmentRepoFactory
		AuditRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// EventDispatcher receives the events of a committed command. It is best
// effort and never reports failures back to the command.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []event.Event)
}
