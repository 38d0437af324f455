// Package kernel holds the primitives shared by every fulfillment aggregate:
// the UUID identifier value object and the Actor/Role pair used for edge
// authorization.
package kernel
