package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type shipmentRepos interface {
	ProductRepoFactory
	ShipmentRepoFactory
	AuditRepoFactory
}

// shipmentAdvancer advances a loaded group inside the caller's transaction.
// Entering ready_for_pickup issues the label first; the graph and the role
// are checked before the carrier is called so a refused advance never
// consumes a tracking number.
type shipmentAdvancer struct {
	workflow services.ShipmentWorkflow
	labels   ports.LabelIssuer
}

func (a shipmentAdvancer) advance(
	ctx context.Context,
	repos shipmentRepos,
	group *shipment.Group,
	target shipment.Status,
	actor kernel.Actor,
) (bool, services.Outcome, error) {
	members, err := repos.ProductRepository().GetMany(ctx, group.Members())
	if err != nil {
		return false, services.Outcome{}, err
	}

	if target == shipment.ReadyForPickup && group.Status() == shipment.Packed && !group.IsLabeled() {
		if err = shipment.Graph.Check(group.Status(), target, actor); err != nil {
			return false, services.Outcome{}, err
		}
		number, issueErr := a.labels.Issue(ctx, group)
		if issueErr != nil {
			return false, services.Outcome{}, issueErr
		}
		if err = group.AssignTracking(number); err != nil {
			return false, services.Outcome{}, err
		}
	}

	changed, out, err := a.workflow.Advance(group, members, target, actor)
	if err != nil || !changed {
		return false, services.Outcome{}, err
	}

	if err = persistGroup(ctx, repos, group, members, out); err != nil {
		return false, services.Outcome{}, err
	}
	return true, out, nil
}

func persistGroup(
	ctx context.Context,
	repos shipmentRepos,
	group *shipment.Group,
	members []*product.Product,
	out services.Outcome,
) error {
	if err := repos.ShipmentGroupRepository().Update(ctx, group); err != nil {
		return err
	}
	for _, m := range members {
		if err := repos.ProductRepository().Update(ctx, m); err != nil {
			return err
		}
	}
	return repos.AuditRepository().Append(ctx, out.Entries...)
}
