package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

var shipmentEventKinds = map[shipment.Status]event.Kind{
	shipment.Workstation:    event.ShipmentCreated,
	shipment.Packed:         event.ShipmentPacked,
	shipment.ReadyForPickup: event.ShipmentReadyForPickup,
	shipment.Shipped:        event.ShipmentShipped,
}

// ShipmentWorkflow drives a group and cascades every group transition to its
// members through the ProductLifecycle. Either every member moves or the
// call fails; the caller discards the in-memory aggregates on error and rolls
// back the transaction.
//
// Events are emitted per group, never per member.
type ShipmentWorkflow struct {
	lifecycle ProductLifecycle
}

func NewShipmentWorkflow(lifecycle ProductLifecycle) ShipmentWorkflow {
	return ShipmentWorkflow{lifecycle: lifecycle}
}

// Open starts a freshly resolved group: every member moves sold -> picking.
func (w ShipmentWorkflow) Open(g *shipment.Group, members []*product.Product, actor kernel.Actor) (Outcome, error) {
	if err := g.Validate(); err != nil {
		return Outcome{}, err
	}
	out, err := w.cascade(g, members, actor)
	if err != nil {
		return Outcome{}, err
	}

	entry, err := audit.NewEntry(event.EntityShipmentGroup, g.ID(), "", g.Status().String(), actor, groupContext(g, nil))
	if err != nil {
		return Outcome{}, err
	}
	out.Entries = append(out.Entries, entry)
	out.Events = append(out.Events, groupEvent(g, event.ShipmentCreated, members))

	return out, nil
}

// Advance moves g to target and every member to the matching product status.
// Advancing to the current status changes nothing and reports false. The
// tracking number must already be assigned before entering ready_for_pickup.
func (w ShipmentWorkflow) Advance(
	g *shipment.Group,
	members []*product.Product,
	target shipment.Status,
	actor kernel.Actor,
) (bool, Outcome, error) {
	if err := g.Validate(); err != nil {
		return false, Outcome{}, err
	}
	if err := checkMembers(g, members); err != nil {
		return false, Outcome{}, err
	}

	from := g.Status()
	changed, err := g.Advance(target, actor)
	if err != nil || !changed {
		return false, Outcome{}, err
	}

	out, err := w.cascade(g, members, actor)
	if err != nil {
		return false, Outcome{}, err
	}

	entry, err := audit.NewEntry(event.EntityShipmentGroup, g.ID(), from.String(), target.String(), actor, groupContext(g, nil))
	if err != nil {
		return false, Outcome{}, err
	}
	out.Entries = append(out.Entries, entry)
	if kind, ok := shipmentEventKinds[target]; ok {
		out.Events = append(out.Events, groupEvent(g, kind, members))
	}

	return true, out, nil
}

// RemoveMember splits member off g and reverts it to sold. The group keeps
// its tracking number; removing the last member dissolves it.
func (w ShipmentWorkflow) RemoveMember(g *shipment.Group, member *product.Product, actor kernel.Actor) (Outcome, error) {
	if err := g.Validate(); err != nil {
		return Outcome{}, err
	}
	if err := member.Validate(); err != nil {
		return Outcome{}, err
	}

	from := g.Status()
	if err := g.RemoveMember(member.ID(), actor); err != nil {
		return Outcome{}, err
	}

	split := map[string]string{"split_product_id": member.ID().String()}

	var out Outcome
	if member.Status() != product.Sold {
		_, reverted, err := w.lifecycle.Revert(member, actor, groupContext(g, split))
		if err != nil {
			return Outcome{}, err
		}
		out.Merge(reverted)
	}

	entry, err := audit.NewEntry(event.EntityShipmentGroup, g.ID(), from.String(), g.Status().String(), actor, groupContext(g, split))
	if err != nil {
		return Outcome{}, err
	}
	out.Entries = append(out.Entries, entry)

	payload := map[string]string{"group_id": g.ID().String(), "remaining": fmt.Sprint(len(g.Members()))}
	if g.IsLabeled() {
		payload["tracking_number"] = g.TrackingNumber()
	}
	out.Events = append(out.Events, event.NewProductEvent(event.ShipmentSplit, member.ID(), member.OwnerID(), payload))

	return out, nil
}

func (w ShipmentWorkflow) cascade(g *shipment.Group, members []*product.Product, actor kernel.Actor) (Outcome, error) {
	target, ok := g.Status().ProductStatus()
	if !ok {
		return Outcome{}, errs.NewInvalidTransitionError(shipment.Graph.EntityType(), g.Status().String(), g.Status().String())
	}

	var out Outcome
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return Outcome{}, err
		}
		_, res, err := w.lifecycle.Apply(m, ProductTransition{
			To:      target,
			Actor:   actor,
			Context: map[string]string{"group_id": g.ID().String()},
		})
		if err != nil {
			return Outcome{}, err
		}
		out.Merge(res)
	}
	return out, nil
}

// checkMembers makes sure the loaded products are exactly the group members.
func checkMembers(g *shipment.Group, members []*product.Product) error {
	if len(members) != len(g.Members()) {
		return errs.NewValueIsInvalidErrorWithCause("members",
			fmt.Errorf("group %s has %d members, got %d", g.ID(), len(g.Members()), len(members)))
	}
	for _, m := range members {
		if !g.HasMember(m.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("members",
				fmt.Errorf("%s is not a member of group %s", m.ID(), g.ID()))
		}
	}
	return nil
}

func groupContext(g *shipment.Group, extra map[string]string) map[string]string {
	ctx := map[string]string{
		"kind":    string(g.Kind()),
		"carrier": g.Carrier().String(),
	}
	if g.IsLabeled() {
		ctx["tracking_number"] = g.TrackingNumber()
	}
	for k, v := range extra {
		ctx[k] = v
	}
	return ctx
}

func groupEvent(g *shipment.Group, kind event.Kind, members []*product.Product) event.Event {
	owners := make([]kernel.UUID, 0, len(members))
	for _, m := range members {
		owners = append(owners, m.OwnerID())
	}
	payload := map[string]string{
		"status":  g.Status().String(),
		"kind":    string(g.Kind()),
		"carrier": g.Carrier().String(),
		"members": fmt.Sprint(len(members)),
	}
	if g.IsLabeled() {
		payload["tracking_number"] = g.TrackingNumber()
		payload["tracking_url"] = g.TrackingURL()
	}
	return event.NewShipmentEvent(kind, g.ID(), owners, payload)
}
