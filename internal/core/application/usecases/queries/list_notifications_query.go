package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery returns a seller's notifications, newest first.
type ListNotificationsQuery struct {
	recipientID kernel.UUID
	unreadOnly  bool

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(recipientID kernel.UUID, unreadOnly bool) (ListNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{
		recipientID: recipientID,
		unreadOnly:  unreadOnly,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

func (q ListNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

type ListNotificationsQueryResponse struct {
	ID        kernel.UUID       `json:"id"`
	Kind      string            `json:"kind"`
	EntityID  kernel.UUID       `json:"entityId"`
	Payload   map[string]string `json:"payload"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}
