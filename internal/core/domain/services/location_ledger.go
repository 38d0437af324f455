package services

import (
	"strconv"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
)

// LocationLedger moves occupancy between storage slots and audits every
// change of a slot's count. Callers load the affected locations under a row
// lock and save them in the same transaction as the product.
type LocationLedger struct{}

func NewLocationLedger() LocationLedger {
	return LocationLedger{}
}

// Reserve takes one slot in l for productID. A full slot fails with
// CapacityExceeded and l is unchanged.
func (LocationLedger) Reserve(l *location.Location, productID kernel.UUID, actor kernel.Actor) (audit.Entry, error) {
	if err := l.Validate(); err != nil {
		return audit.Entry{}, err
	}
	before := l.CurrentCount()
	if err := l.Reserve(); err != nil {
		return audit.Entry{}, err
	}
	return ledgerEntry(l, before, productID, actor, "reserve")
}

// Release frees one slot in l. When the count is already zero nothing changes,
// released is false and the caller is expected to log the drift.
func (LocationLedger) Release(l *location.Location, productID kernel.UUID, actor kernel.Actor) (entry audit.Entry, released bool, err error) {
	if err = l.Validate(); err != nil {
		return audit.Entry{}, false, err
	}
	before := l.CurrentCount()
	if !l.Release() {
		return audit.Entry{}, false, nil
	}
	entry, err = ledgerEntry(l, before, productID, actor, "release")
	return entry, err == nil, err
}

func ledgerEntry(l *location.Location, before int, productID kernel.UUID, actor kernel.Actor, op string) (audit.Entry, error) {
	return audit.NewEntry(event.EntityLocation, l.ID(),
		strconv.Itoa(before), strconv.Itoa(l.CurrentCount()), actor,
		map[string]string{"op": op, "product_id": productID.String(), "code": l.Code()})
}
