package shipment

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/statusgraph"
	"fulfillment/internal/pkg/errs"
)

// Status is the stage of a shipment group.
//
//	workstation ─> packed ─> ready_for_pickup ─> shipped
//
// dissolved is terminal and only reached when the last member is removed.
type Status int

const (
	Unknown Status = iota
	Workstation
	Packed
	ReadyForPickup
	Shipped
	Dissolved
)

var statusNames = map[Status]string{
	Unknown:        "unknown",
	Workstation:    "workstation",
	Packed:         "packed",
	ReadyForPickup: "ready_for_pickup",
	Shipped:        "shipped",
	Dissolved:      "dissolved",
}

var memberStatus = map[Status]product.Status{
	Workstation:    product.Picking,
	Packed:         product.Packed,
	ReadyForPickup: product.ReadyForPickup,
	Shipped:        product.Shipped,
}

var (
	staffRoles    = []kernel.Role{kernel.RoleStaff, kernel.RoleAdmin}
	handoverRoles = []kernel.Role{kernel.RoleStaff, kernel.RoleAdmin, kernel.RoleSystem}
)

// Graph is the shipment group status graph.
var Graph = statusgraph.New("shipment_group",
	statusgraph.Edge[Status]{From: Workstation, To: Packed, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Packed, To: ReadyForPickup, Roles: staffRoles},
	statusgraph.Edge[Status]{From: ReadyForPickup, To: Shipped, Roles: handoverRoles},
)

func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, n := range statusNames {
		if status != Unknown && n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// ProductStatus is the status every member of a group in s must have.
// Dissolved groups have no members and report false.
func (s Status) ProductStatus() (product.Status, bool) {
	ps, ok := memberStatus[s]
	return ps, ok
}

// IsOpen reports whether members of a group in s can still be removed and
// whether the group still claims them against other groups.
func (s Status) IsOpen() bool {
	return s == Workstation || s == Packed || s == ReadyForPickup
}
