// Package product models a single consigned item and its lifecycle.
//
// The package includes:
//   - Product: the aggregate root holding owner, status, storage slot and metadata
//   - Status: the lifecycle stages and Graph, the table of legal transitions
//     with the roles allowed on each edge
//
// Key business rules:
//   - A product occupies a storage slot exactly while it is in storage or listed
//   - Entering storage requires a slot
//   - disposed is only reachable before storage (failed inspection)
//   - returned is reachable from every stage from sold through shipped
//   - Shipment stages mirror the owning shipment group
package product
