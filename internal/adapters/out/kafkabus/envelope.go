// Package kafkabus publishes seller notifications to Kafka.
package kafkabus

import (
	"encoding/json"
	"time"
)

const EnvelopeVersion = 1

// Envelope wraps every record this service writes. Consumers switch on
// EventType and EventVersion before decoding Payload.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

type NotificationPayload struct {
	NotificationID string            `json:"notification_id"`
	RecipientID    string            `json:"recipient_id"`
	Kind           string            `json:"kind"`
	EntityID       string            `json:"entity_id"`
	Data           map[string]string `json:"data"`
}
