// Package audit holds the append-only record of every status change.
package audit

import (
	"errors"
	"maps"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Entry is immutable once built.
type Entry struct {
	id         kernel.UUID
	entityType string
	entityID   kernel.UUID
	fromStatus string
	toStatus   string
	actorID    kernel.UUID
	timestamp  time.Time
	context    map[string]string
}

// NewEntry records one change of entityID made by actor.
func NewEntry(entityType string, entityID kernel.UUID, from, to string, actor kernel.Actor, context map[string]string) (Entry, error) {
	var errList []error
	if strings.TrimSpace(entityType) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("entityType"))
	}
	if err := entityID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := actor.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:         kernel.NewUUID(),
		entityType: entityType,
		entityID:   entityID,
		fromStatus: from,
		toStatus:   to,
		actorID:    actor.ID(),
		timestamp:  time.Now().UTC(),
		context:    maps.Clone(context),
	}, nil
}

func RestoreEntry(
	id kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	from, to string,
	actorID kernel.UUID,
	timestamp time.Time,
	context map[string]string,
) Entry {
	return Entry{
		id:         id,
		entityType: entityType,
		entityID:   entityID,
		fromStatus: from,
		toStatus:   to,
		actorID:    actorID,
		timestamp:  timestamp,
		context:    maps.Clone(context),
	}
}

func (e Entry) ID() kernel.UUID { return e.id }
func (e Entry) EntityType() string { return e.entityType }
func (e Entry) EntityID() kernel.UUID { return e.entityID }
func (e Entry) FromStatus() string { return e.fromStatus }
func (e Entry) ToStatus() string { return e.toStatus }
func (e Entry) ActorID() kernel.UUID { return e.actorID }
func (e Entry) Timestamp() time.Time { return e.timestamp }
func (e Entry) Context() map[string]string { return maps.Clone(e.context) }
