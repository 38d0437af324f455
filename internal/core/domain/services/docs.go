// Package services holds the domain services that coordinate several
// aggregates of the fulfillment core.
//
// The package includes:
//   - ProductLifecycle: applies one product transition and records it
//   - LocationLedger: moves storage slot occupancy and audits it
//   - BundleResolver: validates candidates and opens a shipment group
//   - ShipmentWorkflow: advances or splits a group with a cascade to members
//   - NotificationDispatcher: turns committed events into notifications
//
// The services are pure. They mutate the aggregates handed to them and
// return an Outcome; persistence, locking and transactions belong to the
// application layer.
package services
