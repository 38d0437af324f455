package kafkabus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"

	"github.com/sebdah/goldie/v2"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func fixedNotification(t *testing.T) *notification.Notification {
	t.Helper()
	id, err := kernel.UUIDFromString("11111111-1111-4111-8111-111111111111")
	require.NoError(t, err)
	recipient, err := kernel.UUIDFromString("22222222-2222-4222-8222-222222222222")
	require.NoError(t, err)
	entity, err := kernel.UUIDFromString("33333333-3333-4333-8333-333333333333")
	require.NoError(t, err)

	n, err := notification.RestoreNotification(id, recipient, event.ProductSold, entity,
		map[string]string{"from": "listed", "to": "sold"}, false,
		time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return n
}

func TestNotificationPublisher_Encode(t *testing.T) {
	publisher := NewNotificationPublisher(nil, "fulfillment")

	raw, err := publisher.Encode(fixedNotification(t))
	require.NoError(t, err)

	var pretty bytes.Buffer
	require.NoError(t, json.Indent(&pretty, raw, "", "  "))
	pretty.WriteByte('\n')

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "notification_envelope", pretty.Bytes())
}

func TestNotificationPublisher_Publish(t *testing.T) {
	t.Run("should key by recipient and tag the event type", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := NewNotificationPublisher(&Producer{w: writer}, "fulfillment")
		n := fixedNotification(t)

		err := publisher.Publish(t.Context(), n)

		require.NoError(t, err)
		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "22222222-2222-4222-8222-222222222222", string(msg.Key))
		assert.Contains(t, msg.Headers, kafka.Header{Key: "x-event-type", Value: []byte("product_sold")})
		assert.Contains(t, msg.Headers, kafka.Header{Key: "x-event-version", Value: []byte("1")})

		var envelope Envelope
		require.NoError(t, json.Unmarshal(msg.Value, &envelope))
		assert.Equal(t, n.ID().String(), envelope.EventID)
	})

	t.Run("should return the writer error", func(t *testing.T) {
		writer := &recordingWriter{err: errors.New("leader not available")}
		publisher := NewNotificationPublisher(&Producer{w: writer}, "fulfillment")

		err := publisher.Publish(t.Context(), fixedNotification(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "leader not available")
	})

	t.Run("should encode a nil payload as an empty object", func(t *testing.T) {
		n, err := notification.NewNotification(event.ShipmentPacked, kernel.NewUUID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		raw, err := NewNotificationPublisher(nil, "fulfillment").Encode(n)
		require.NoError(t, err)

		var envelope Envelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		var payload NotificationPayload
		require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
		assert.NotNil(t, payload.Data)
		assert.Empty(t, payload.Data)
	})
}
