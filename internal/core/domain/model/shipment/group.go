package shipment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrGroupIsNotConstructed is returned when a Group was not built via
	// NewGroup or RestoreGroup.
	ErrGroupIsNotConstructed = errors.New("Group must be created via NewGroup constructor")

	// ErrTrackingNumberIsImmutable is returned when a labeled group is given
	// a different tracking number.
	ErrTrackingNumberIsImmutable = errors.New("tracking number is already assigned")

	errTrackingRequired = errors.New("tracking number is required")
	errGroupClosed      = errors.New("members of a shipped or dissolved group cannot be removed")
)

// Kind tells a single-item shipment from a consolidated one.
type Kind string

const (
	KindSingle  Kind = "single"
	KindBundled Kind = "bundled"
	// KindEmpty is reported by dissolved groups.
	KindEmpty Kind = "empty"
)

// Group is a set of sold products of one owner that travel together under a
// single tracking number.
//
// Invariants:
//   - members are distinct and non-empty unless the group is dissolved
//   - every member shares ownerID
//   - the tracking number is assigned at most once
//   - status is ready_for_pickup or shipped only with a tracking number
type Group struct {
	id             kernel.UUID
	ownerID        kernel.UUID
	status         Status
	members        []kernel.UUID
	carrier        Carrier
	trackingNumber string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	guard          guard.ConstructorGuard
}

// NewGroup opens a group at the workstation.
func NewGroup(id, ownerID kernel.UUID, carrier Carrier, members []kernel.UUID) (*Group, error) {
	now := time.Now().UTC()
	g := &Group{
		status:    Workstation,
		carrier:   carrier,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		g.setID(id),
		g.setOwnerID(ownerID),
		g.setCarrier(carrier),
		g.setMembers(Workstation, members),
	); err != nil {
		return nil, err
	}
	return g, nil
}

func RestoreGroup(
	id, ownerID kernel.UUID,
	status Status,
	carrier Carrier,
	trackingNumber string,
	members []kernel.UUID,
	version int,
	createdAt, updatedAt time.Time,
) (*Group, error) {
	g := &Group{
		trackingNumber: trackingNumber,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		guard:          guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		g.setID(id),
		g.setOwnerID(ownerID),
		g.setCarrier(carrier),
		g.setStatus(status),
		g.setMembers(status, members),
	); err != nil {
		return nil, err
	}
	if (status == ReadyForPickup || status == Shipped) && trackingNumber == "" {
		return nil, errs.NewValueIsRequiredErrorWithCause("trackingNumber", fmt.Errorf("%s groups are labeled", status))
	}
	return g, nil
}

func (g *Group) Validate() error {
	if g == nil {
		return ErrGroupIsNotConstructed
	}
	return g.guard.Validate(ErrGroupIsNotConstructed)
}

func (g *Group) ID() kernel.UUID {
	return g.id
}

func (g *Group) OwnerID() kernel.UUID {
	return g.ownerID
}

func (g *Group) Status() Status {
	return g.status
}

// Members returns a copy of the member product ids in join order.
func (g *Group) Members() []kernel.UUID {
	return slices.Clone(g.members)
}

func (g *Group) HasMember(productID kernel.UUID) bool {
	return slices.ContainsFunc(g.members, productID.IsEqual)
}

func (g *Group) Carrier() Carrier {
	return g.carrier
}

func (g *Group) TrackingNumber() string {
	return g.trackingNumber
}

func (g *Group) IsLabeled() bool {
	return g.trackingNumber != ""
}

// TrackingURL is the carrier's public tracking page, empty until labeled.
func (g *Group) TrackingURL() string {
	return g.carrier.TrackingURL(g.trackingNumber)
}

func (g *Group) Version() int {
	return g.version
}

func (g *Group) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Group) UpdatedAt() time.Time {
	return g.updatedAt
}

func (g *Group) IsOpen() bool {
	return g.status.IsOpen()
}

func (g *Group) Kind() Kind {
	switch len(g.members) {
	case 0:
		return KindEmpty
	case 1:
		return KindSingle
	default:
		return KindBundled
	}
}

func (g *Group) MarkPersisted() {
	g.version++
}

// Advance moves the group along one edge of Graph. Advancing to the current
// status is a no-op and reports false, but the actor must still hold a role
// that could have brought the group there. Entering ready_for_pickup
// requires a tracking number; assign it first with AssignTracking.
func (g *Group) Advance(to Status, actor kernel.Actor) (bool, error) {
	if to == g.status && g.status != Dissolved {
		return false, Graph.CheckStay(g.status, actor)
	}
	if err := Graph.Check(g.status, to, actor); err != nil {
		return false, err
	}
	if to == ReadyForPickup && !g.IsLabeled() {
		return false, errs.NewInvalidTransitionErrorWithCause(
			Graph.EntityType(), g.status.String(), to.String(), errTrackingRequired)
	}

	g.status = to
	g.updatedAt = time.Now().UTC()
	return true, nil
}

// AssignTracking labels the group once. Re-assigning the same number is a
// no-op; a different number fails with ErrTrackingNumberIsImmutable.
func (g *Group) AssignTracking(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if g.IsLabeled() {
		if g.trackingNumber == number {
			return nil
		}
		return fmt.Errorf("%w: group %s has %s", ErrTrackingNumberIsImmutable, g.id, g.trackingNumber)
	}
	if !g.IsOpen() {
		return errs.NewInvalidTransitionErrorWithCause(
			Graph.EntityType(), g.status.String(), g.status.String(), errGroupClosed)
	}
	g.trackingNumber = number
	g.updatedAt = time.Now().UTC()
	return nil
}

// RemoveMember splits productID off the group. The tracking number stays with
// the group. Removing the last member dissolves it.
func (g *Group) RemoveMember(productID kernel.UUID, actor kernel.Actor) error {
	if !g.IsOpen() {
		return errs.NewInvalidTransitionErrorWithCause(
			Graph.EntityType(), g.status.String(), Dissolved.String(), errGroupClosed)
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if !slices.Contains(staffRoles, actor.Role()) {
		return errs.NewUnauthorizedError(actor.Role().String(), g.status.String(), "split")
	}

	idx := slices.IndexFunc(g.members, productID.IsEqual)
	if idx < 0 {
		return errs.NewObjectNotFoundErrorWithCause("productID", productID,
			fmt.Errorf("not a member of group %s", g.id))
	}

	g.members = slices.Delete(g.members, idx, idx+1)
	if len(g.members) == 0 {
		g.status = Dissolved
	}
	g.updatedAt = time.Now().UTC()
	return nil
}

func (g *Group) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *Group) setOwnerID(ownerID kernel.UUID) error {
	if ownerID.IsZero() {
		return errs.NewValueIsRequiredError("ownerID")
	}
	g.ownerID = ownerID
	return nil
}

func (g *Group) setCarrier(carrier Carrier) error {
	c, err := ParseCarrier(string(carrier))
	if err != nil {
		return err
	}
	g.carrier = c
	return nil
}

func (g *Group) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	g.status = status
	return nil
}

func (g *Group) setMembers(status Status, members []kernel.UUID) error {
	if status == Dissolved {
		if len(members) != 0 {
			return errs.NewValueIsInvalidErrorWithCause("members", errors.New("dissolved groups have no members"))
		}
		g.members = nil
		return nil
	}
	if len(members) == 0 {
		return errs.NewValueIsRequiredError("members")
	}
	seen := make(map[kernel.UUID]struct{}, len(members))
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return err
		}
		if _, dup := seen[m]; dup {
			return errs.NewValueIsInvalidErrorWithCause("members", fmt.Errorf("duplicate member %s", m))
		}
		seen[m] = struct{}{}
	}
	g.members = slices.Clone(members)
	return nil
}
