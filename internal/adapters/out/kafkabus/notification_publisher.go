package kafkabus

import (
	"context"
	"encoding/json"
	"strconv"

	"fulfillment/internal/core/domain/model/notification"

	"github.com/segmentio/kafka-go"
)

// NotificationPublisher implements ports.NotificationPublisher. Records are
// keyed by recipient so one seller's notifications stay ordered within a
// partition. EventID is the notification id, which lets consumers drop
// redeliveries.
type NotificationPublisher struct {
	producer    *Producer
	serviceName string
}

func NewNotificationPublisher(producer *Producer, serviceName string) *NotificationPublisher {
	return &NotificationPublisher{producer: producer, serviceName: serviceName}
}

func (p *NotificationPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	value, err := p.Encode(n)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, []byte(n.RecipientID().String()), value,
		kafka.Header{Key: "x-event-type", Value: []byte(n.Kind().String())},
		kafka.Header{Key: "x-event-version", Value: []byte(strconv.Itoa(EnvelopeVersion))},
	)
}

// Encode renders the envelope written for n.
func (p *NotificationPublisher) Encode(n *notification.Notification) ([]byte, error) {
	data := n.Payload()
	if data == nil {
		data = map[string]string{}
	}
	payload, err := json.Marshal(NotificationPayload{
		NotificationID: n.ID().String(),
		RecipientID:    n.RecipientID().String(),
		Kind:           n.Kind().String(),
		EntityID:       n.EntityID().String(),
		Data:           data,
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{
		EventID:       n.ID().String(),
		EventType:     n.Kind().String(),
		EventVersion:  EnvelopeVersion,
		OccurredAt:    n.CreatedAt().UTC(),
		Producer:      p.serviceName,
		CorrelationID: n.EntityID().String(),
		Payload:       payload,
	})
}
