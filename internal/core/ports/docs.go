// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories bound to a transaction, and the outbound
// collaborators (carrier labels, notification stream, caches) the
// application layer calls.
package ports
