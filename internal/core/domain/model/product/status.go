package product

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/statusgraph"
	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle stage of a physical item.
//
//	intake ─> inspection ─> storage ─> listed ─> sold ─> picking ─> packed ─> ready_for_pickup ─> shipped
//	  │           │                              │         │          │             │                │
//	  └─> disposed┘                              └─────────┴──────────┴─────────────┴────────────────┴─> returned
//
// picking, packed, ready_for_pickup and shipped mirror the owning shipment
// group and are only entered through the shipment workflow.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Intake
	Inspection
	Storage
	Listed
	Sold
	Picking
	Packed
	ReadyForPickup
	Shipped
	Returned
	Disposed
)

var statusNames = map[Status]string{
	Unknown:        "unknown",
	Intake:         "intake",
	Inspection:     "inspection",
	Storage:        "storage",
	Listed:         "listed",
	Sold:           "sold",
	Picking:        "picking",
	Packed:         "packed",
	ReadyForPickup: "ready_for_pickup",
	Shipped:        "shipped",
	Returned:       "returned",
	Disposed:       "disposed",
}

var (
	staffRoles    = []kernel.Role{kernel.RoleStaff, kernel.RoleAdmin}
	saleRoles     = []kernel.Role{kernel.RoleStaff, kernel.RoleAdmin, kernel.RoleSystem}
	handoverRoles = []kernel.Role{kernel.RoleStaff, kernel.RoleAdmin, kernel.RoleSystem}
)

// Graph is the product status graph. Every product transition is checked
// against it.
var Graph = statusgraph.New("product",
	statusgraph.Edge[Status]{From: Intake, To: Inspection, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Intake, To: Disposed, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Inspection, To: Storage, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Inspection, To: Disposed, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Storage, To: Listed, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Listed, To: Sold, Roles: saleRoles},
	statusgraph.Edge[Status]{From: Sold, To: Picking, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Picking, To: Packed, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Packed, To: ReadyForPickup, Roles: staffRoles},
	statusgraph.Edge[Status]{From: ReadyForPickup, To: Shipped, Roles: handoverRoles},
	statusgraph.Edge[Status]{From: Sold, To: Returned, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Picking, To: Returned, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Packed, To: Returned, Roles: staffRoles},
	statusgraph.Edge[Status]{From: ReadyForPickup, To: Returned, Roles: staffRoles},
	statusgraph.Edge[Status]{From: Shipped, To: Returned, Roles: staffRoles},
)

// ParseStatus maps the wire name of a status back to its value.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, n := range statusNames {
		if status != Unknown && n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a product status", s))
}

// Validate rejects Unknown and out-of-range values.
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

// HoldsLocation reports whether a product in s occupies a storage slot.
func (s Status) HoldsLocation() bool {
	return s == Storage || s == Listed
}

// IsShipmentStage reports whether s is driven by a shipment group.
func (s Status) IsShipmentStage() bool {
	return s == Picking || s == Packed || s == ReadyForPickup || s == Shipped
}

// IsShipmentEdge reports whether from -> to is a workflow edge owned by the
// shipment group rather than by the product itself.
func IsShipmentEdge(from, to Status) bool {
	return to.IsShipmentStage() && (from == Sold || from.IsShipmentStage())
}
