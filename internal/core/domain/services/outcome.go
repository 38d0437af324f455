package services

import (
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
)

// Outcome collects what a domain operation produced besides its state change:
// audit entries to append in the same transaction and events to dispatch
// after commit.
type Outcome struct {
	Entries []audit.Entry
	Events  []event.Event
}

// Merge appends other to o.
func (o *Outcome) Merge(other Outcome) {
	o.Entries = append(o.Entries, other.Entries...)
	o.Events = append(o.Events, other.Events...)
}
