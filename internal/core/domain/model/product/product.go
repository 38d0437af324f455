package product

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product was not built via
	// NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	errLocationRequired    = errors.New("location is required")
	errLocationNotAccepted = errors.New("location is only accepted when entering storage or listed")
)

// Change describes one applied transition. FromLocation and ToLocation let
// the caller keep the location ledger in step with the product.
type Change struct {
	From         Status
	To           Status
	FromLocation *kernel.UUID
	ToLocation   *kernel.UUID
}

// LocationChanged reports whether the slot occupied by the product changed.
func (c Change) LocationChanged() bool {
	switch {
	case c.FromLocation == nil && c.ToLocation == nil:
		return false
	case c.FromLocation == nil || c.ToLocation == nil:
		return true
	default:
		return !c.FromLocation.IsEqual(*c.ToLocation)
	}
}

// Product is the aggregate root for one consigned physical item.
//
// Invariants:
//   - status is always a node of Graph
//   - locationID is set if and only if status is Storage or Listed
//   - status changes only through Transition and RevertToSold
type Product struct {
	id         kernel.UUID
	ownerID    kernel.UUID
	status     Status
	locationID *kernel.UUID
	metadata   map[string]string
	version    int
	createdAt  time.Time
	updatedAt  time.Time
	guard      guard.ConstructorGuard
}

// NewProduct registers an item at intake for the given seller.
func NewProduct(id, ownerID kernel.UUID, metadata map[string]string) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		status:    Intake,
		metadata:  map[string]string{},
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setOwnerID(ownerID)); err != nil {
		return nil, err
	}
	maps.Copy(p.metadata, metadata)

	return p, nil
}

// RestoreProduct rebuilds a product from storage. The location invariant is
// checked so a corrupted row never becomes a live aggregate.
func RestoreProduct(
	id, ownerID kernel.UUID,
	status Status,
	locationID *kernel.UUID,
	metadata map[string]string,
	version int,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	p := &Product{
		metadata:  map[string]string{},
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOwnerID(ownerID),
		p.setStatus(status),
		p.setLocationID(status, locationID),
	); err != nil {
		return nil, err
	}
	maps.Copy(p.metadata, metadata)

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) OwnerID() kernel.UUID {
	return p.ownerID
}

func (p *Product) Status() Status {
	return p.status
}

// LocationID returns the occupied storage slot, or nil outside storage/listed.
func (p *Product) LocationID() *kernel.UUID {
	return p.locationID
}

// Metadata returns a copy of the free-form attributes (photos, inspection notes).
func (p *Product) Metadata() map[string]string {
	return maps.Clone(p.metadata)
}

// Version is the optimistic concurrency counter loaded from storage.
func (p *Product) Version() int {
	return p.version
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// MarkPersisted advances the version after a successful write so the same
// instance can be written again within one unit of work.
func (p *Product) MarkPersisted() {
	p.version++
}

// Transition moves the product along one edge of Graph.
//
// Entering Storage needs a location. Storage -> Listed keeps the current slot
// unless a different one is given. Leaving Storage/Listed clears the slot.
// Nothing is changed when an error is returned.
func (p *Product) Transition(to Status, actor kernel.Actor, locationID *kernel.UUID) (Change, error) {
	if err := Graph.Check(p.status, to, actor); err != nil {
		return Change{}, err
	}

	target, err := p.resolveLocation(to, locationID)
	if err != nil {
		return Change{}, err
	}

	change := Change{
		From:         p.status,
		To:           to,
		FromLocation: p.locationID,
		ToLocation:   target,
	}

	p.status = to
	p.locationID = target
	p.updatedAt = time.Now().UTC()

	return change, nil
}

// RevertToSold rolls a product pulled out of a shipment group back to Sold.
// This is not an edge of Graph: it undoes the workflow stages and is only
// possible before the product has been handed to the carrier.
func (p *Product) RevertToSold(actor kernel.Actor) (Change, error) {
	if p.status != Picking && p.status != Packed && p.status != ReadyForPickup {
		return Change{}, errs.NewInvalidTransitionErrorWithCause(
			Graph.EntityType(), p.status.String(), Sold.String(),
			fmt.Errorf("%s is not a valid status to revert", p.status),
		)
	}
	if err := actor.Validate(); err != nil {
		return Change{}, err
	}
	if !slices.Contains(staffRoles, actor.Role()) {
		return Change{}, errs.NewUnauthorizedError(actor.Role().String(), p.status.String(), Sold.String())
	}

	change := Change{From: p.status, To: Sold}
	p.status = Sold
	p.updatedAt = time.Now().UTC()

	return change, nil
}

func (p *Product) resolveLocation(to Status, locationID *kernel.UUID) (*kernel.UUID, error) {
	if !to.HoldsLocation() {
		if locationID != nil {
			return nil, errs.NewInvalidTransitionErrorWithCause(
				Graph.EntityType(), p.status.String(), to.String(), errLocationNotAccepted)
		}
		return nil, nil
	}

	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return nil, err
		}
		id := *locationID
		return &id, nil
	}

	if p.locationID != nil {
		return p.locationID, nil
	}

	return nil, errs.NewInvalidTransitionErrorWithCause(
		Graph.EntityType(), p.status.String(), to.String(), errLocationRequired)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setOwnerID(ownerID kernel.UUID) error {
	if ownerID.IsZero() {
		return errs.NewValueIsRequiredError("ownerID")
	}
	p.ownerID = ownerID
	return nil
}

func (p *Product) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Product) setLocationID(status Status, locationID *kernel.UUID) error {
	switch {
	case status.HoldsLocation() && locationID == nil:
		return errs.NewValueIsRequiredErrorWithCause("locationID", fmt.Errorf("%s products hold a location", status))
	case !status.HoldsLocation() && locationID != nil:
		return errs.NewValueIsInvalidErrorWithCause("locationID", fmt.Errorf("%s products hold no location", status))
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return err
		}
	}
	p.locationID = locationID
	return nil
}
