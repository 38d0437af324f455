package services

import (
	"maps"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

var productEventKinds = map[product.Status]event.Kind{
	product.Inspection: event.ProductInspected,
	product.Storage:    event.ProductStored,
	product.Listed:     event.ProductListed,
	product.Sold:       event.ProductSold,
	product.Disposed:   event.ProductDisposed,
	product.Returned:   event.ProductReturned,
}

// ProductTransition is one requested move of a product.
type ProductTransition struct {
	To         product.Status
	Actor      kernel.Actor
	LocationID *kernel.UUID
	// Context is copied into the audit entry.
	Context map[string]string
}

// ProductLifecycle applies transitions to a single product and records them.
// It never touches storage or the dispatcher: the caller persists the
// product, settles the returned Change with the LocationLedger, appends the
// audit entries and dispatches the events after commit.
type ProductLifecycle struct{}

func NewProductLifecycle() ProductLifecycle {
	return ProductLifecycle{}
}

// Apply validates and applies tr to p.
func (ProductLifecycle) Apply(p *product.Product, tr ProductTransition) (product.Change, Outcome, error) {
	if err := p.Validate(); err != nil {
		return product.Change{}, Outcome{}, err
	}

	change, err := p.Transition(tr.To, tr.Actor, tr.LocationID)
	if err != nil {
		return product.Change{}, Outcome{}, err
	}

	entry, err := audit.NewEntry(event.EntityProduct, p.ID(), change.From.String(), change.To.String(),
		tr.Actor, productAuditContext(change, tr.Context))
	if err != nil {
		return product.Change{}, Outcome{}, err
	}

	out := Outcome{Entries: []audit.Entry{entry}}
	if kind, ok := productEventKinds[change.To]; ok {
		payload := map[string]string{"from": change.From.String(), "to": change.To.String()}
		if change.ToLocation != nil {
			payload["location_id"] = change.ToLocation.String()
		}
		out.Events = append(out.Events, event.NewProductEvent(kind, p.ID(), p.OwnerID(), payload))
	}

	return change, out, nil
}

// Revert rolls a workflow-stage product back to sold after it left its group.
// No event is produced; the split itself is announced by the workflow.
func (ProductLifecycle) Revert(p *product.Product, actor kernel.Actor, context map[string]string) (product.Change, Outcome, error) {
	if err := p.Validate(); err != nil {
		return product.Change{}, Outcome{}, err
	}

	change, err := p.RevertToSold(actor)
	if err != nil {
		return product.Change{}, Outcome{}, err
	}

	entry, err := audit.NewEntry(event.EntityProduct, p.ID(), change.From.String(), change.To.String(),
		actor, productAuditContext(change, context))
	if err != nil {
		return product.Change{}, Outcome{}, err
	}

	return change, Outcome{Entries: []audit.Entry{entry}}, nil
}

func productAuditContext(change product.Change, extra map[string]string) map[string]string {
	ctx := maps.Clone(extra)
	if ctx == nil {
		ctx = map[string]string{}
	}
	if change.FromLocation != nil {
		ctx["from_location_id"] = change.FromLocation.String()
	}
	if change.ToLocation != nil {
		ctx["to_location_id"] = change.ToLocation.String()
	}
	return ctx
}
