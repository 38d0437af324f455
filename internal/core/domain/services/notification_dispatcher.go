package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"
)

var errNoRecipient = errors.New("event has no recipient")

// NotificationDispatcher fans an event out into one notification per distinct
// owner. It is best effort: a recipient that cannot be addressed produces a
// DispatchFailureError instead of aborting the rest.
type NotificationDispatcher struct{}

func NewNotificationDispatcher() NotificationDispatcher {
	return NotificationDispatcher{}
}

// Dispatch returns the notifications to store and the failures to log.
func (NotificationDispatcher) Dispatch(e event.Event) ([]*notification.Notification, []error) {
	recipients := e.Recipients()
	if len(recipients) == 0 {
		return nil, []error{errs.NewDispatchFailureError(e.Kind.String(), nil, errNoRecipient)}
	}

	var (
		out      = make([]*notification.Notification, 0, len(recipients))
		failures []error
	)
	for _, r := range recipients {
		n, err := notification.NewNotification(e.Kind, e.EntityID, r, e.Payload)
		if err != nil {
			failures = append(failures, errs.NewDispatchFailureError(e.Kind.String(), r, err))
			continue
		}
		out = append(out, n)
	}
	return out, failures
}
