// Package notification models the messages fanned out to sellers when their
// items reach a milestone.
package notification

import (
	"errors"
	"maps"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is addressed to exactly one recipient. Its id is derived from
// (kind, entityID, recipientID), so dispatching the same event twice yields
// the same id and the store keeps one row.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	kind        event.Kind
	entityID    kernel.UUID
	payload     map[string]string
	read        bool
	createdAt   time.Time
	publishedAt *time.Time
	guard       guard.ConstructorGuard
}

// ID derives the notification id for one recipient of one event.
func ID(kind event.Kind, entityID, recipientID kernel.UUID) kernel.UUID {
	return kernel.DeterministicUUID(kind.String(), entityID.String(), recipientID.String())
}

func NewNotification(kind event.Kind, entityID, recipientID kernel.UUID, payload map[string]string) (*Notification, error) {
	var errList []error
	if !kind.IsValid() {
		errList = append(errList, errs.NewValueIsInvalidError("kind"))
	}
	if err := entityID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if recipientID.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("recipientID"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Notification{
		id:          ID(kind, entityID, recipientID),
		recipientID: recipientID,
		kind:        kind,
		entityID:    entityID,
		payload:     maps.Clone(payload),
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func RestoreNotification(
	id, recipientID kernel.UUID,
	kind event.Kind,
	entityID kernel.UUID,
	payload map[string]string,
	read bool,
	createdAt time.Time,
	publishedAt *time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), recipientID.Validate(), entityID.Validate()); err != nil {
		return nil, err
	}
	return &Notification{
		id:          id,
		recipientID: recipientID,
		kind:        kind,
		entityID:    entityID,
		payload:     maps.Clone(payload),
		read:        read,
		createdAt:   createdAt,
		publishedAt: publishedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID { return n.id }
func (n *Notification) RecipientID() kernel.UUID { return n.recipientID }
func (n *Notification) Kind() event.Kind { return n.kind }
func (n *Notification) EntityID() kernel.UUID { return n.entityID }
func (n *Notification) Payload() map[string]string { return maps.Clone(n.payload) }
func (n *Notification) IsRead() bool { return n.read }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) PublishedAt() *time.Time { return n.publishedAt }
func (n *Notification) IsPublished() bool { return n.publishedAt != nil }

// MarkRead flips the read flag. Only the recipient may do it. It reports
// whether anything changed.
func (n *Notification) MarkRead(actor kernel.Actor) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}
	if !actor.ID().IsEqual(n.recipientID) {
		return false, errs.NewUnauthorizedError(actor.Role().String(), "unread", "read")
	}
	if n.read {
		return false, nil
	}
	n.read = true
	return true, nil
}

// MarkPublished records when the relay forwarded the notification.
func (n *Notification) MarkPublished(at time.Time) {
	if n.publishedAt != nil {
		return
	}
	at = at.UTC()
	n.publishedAt = &at
}
