// Package shipment models groups of sold products that ship together.
//
// A group with one member is a single shipment; with more it is a bundle.
// The group is the source of truth for the shipment stages of its members:
// every member's product status is derived from the group status through
// Status.ProductStatus.
//
// Key business rules:
//   - All members share one owner
//   - The tracking number is assigned once, at packed -> ready_for_pickup
//   - Removing a member keeps the tracking number with the remaining group
//   - Removing the last member dissolves the group
package shipment
