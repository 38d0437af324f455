package services

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

var errNotSold = errors.New("only sold products can be bundled")

// BundleResolver decides whether a set of products may ship together.
//
// Business rules, checked in this order for every candidate:
//   - a product already in an open group is AlreadyBundled
//   - a product that is not sold is an InvalidTransition
//   - all candidates share the owner of the first one, otherwise OwnerMismatch
type BundleResolver struct{}

func NewBundleResolver() BundleResolver {
	return BundleResolver{}
}

// Resolve builds a new workstation group for candidates. openGroups maps a
// product id to the open group that already holds it. Candidates with the
// same id collapse into one member.
func (BundleResolver) Resolve(
	groupID kernel.UUID,
	carrier shipment.Carrier,
	candidates []*product.Product,
	openGroups map[kernel.UUID]kernel.UUID,
) (*shipment.Group, error) {
	if len(candidates) == 0 {
		return nil, errs.NewValueIsRequiredError("productIDs")
	}

	members := make([]kernel.UUID, 0, len(candidates))
	var owner kernel.UUID
	for _, p := range candidates {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if slices.ContainsFunc(members, p.ID().IsEqual) {
			continue
		}
		if g, ok := openGroups[p.ID()]; ok {
			return nil, errs.NewAlreadyBundledError(p.ID(), g)
		}
		if p.Status() != product.Sold {
			return nil, errs.NewInvalidTransitionErrorWithCause(
				product.Graph.EntityType(), p.Status().String(), product.Picking.String(), errNotSold)
		}
		if owner.IsZero() {
			owner = p.OwnerID()
		} else if !owner.IsEqual(p.OwnerID()) {
			return nil, errs.NewOwnerMismatchError(owner, p.OwnerID())
		}
		members = append(members, p.ID())
	}

	return shipment.NewGroup(groupID, owner, carrier, members)
}
