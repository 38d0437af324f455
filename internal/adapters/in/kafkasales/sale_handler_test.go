package kafkasales

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductTransitioner struct {
	mock.Mock
}

func (m *MockProductTransitioner) Handle(ctx context.Context, cmd commands.ApplyProductTransitionCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func saleMessage(productID string) kafka.Message {
	return kafka.Message{Value: []byte(`{"event_id":"e-1","event_type":"marketplace.sale",` +
		`"occurred_at":"2026-03-01T09:30:00Z","payload":{"product_id":"` + productID + `","order_id":"o-9"}}`)}
}

func TestSaleHandler_Handle(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("should sell the product as the system actor", func(t *testing.T) {
		transitions := new(MockProductTransitioner)
		transitions.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ApplyProductTransitionCommand) bool {
			return cmd.ProductID() == productID &&
				cmd.Target() == product.Sold &&
				cmd.Actor().Role() == kernel.RoleSystem
		})).Return(nil).Once()

		err := NewSaleHandler(transitions, discardLogger()).Handle(t.Context(), saleMessage(productID.String()))

		require.NoError(t, err)
		transitions.AssertExpectations(t)
	})

	t.Run("should commit a domain rejection", func(t *testing.T) {
		transitions := new(MockProductTransitioner)
		transitions.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewInvalidTransitionError("product", "sold", "sold")).Once()

		err := NewSaleHandler(transitions, discardLogger()).Handle(t.Context(), saleMessage(productID.String()))

		assert.NoError(t, err)
	})

	t.Run("should retry a conflict", func(t *testing.T) {
		transitions := new(MockProductTransitioner)
		transitions.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewConflictError("product", productID, 2)).Once()

		err := NewSaleHandler(transitions, discardLogger()).Handle(t.Context(), saleMessage(productID.String()))

		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should retry an internal failure", func(t *testing.T) {
		transitions := new(MockProductTransitioner)
		transitions.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewInternalError(errors.New("connection reset"))).Once()

		err := NewSaleHandler(transitions, discardLogger()).Handle(t.Context(), saleMessage(productID.String()))

		assert.ErrorIs(t, err, errs.ErrInternal)
	})

	t.Run("should drop malformed messages", func(t *testing.T) {
		transitions := new(MockProductTransitioner)
		handler := NewSaleHandler(transitions, discardLogger())

		assert.NoError(t, handler.Handle(t.Context(), kafka.Message{Value: []byte("{")}))
		assert.NoError(t, handler.Handle(t.Context(), saleMessage("not-a-uuid")))
		transitions.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should ignore other event types", func(t *testing.T) {
		transitions := new(MockProductTransitioner)

		err := NewSaleHandler(transitions, discardLogger()).Handle(t.Context(),
			kafka.Message{Value: []byte(`{"event_type":"marketplace.refund","payload":{}}`)})

		assert.NoError(t, err)
		transitions.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

type scriptedReader struct {
	messages  []kafka.Message
	committed []kafka.Message
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.messages[0]
	r.messages = r.messages[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *scriptedReader) Close() error { return nil }

func TestConsumer_Start(t *testing.T) {
	t.Run("should retry a failing message before committing it", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		reader := &scriptedReader{
			messages: []kafka.Message{{Offset: 1}, {Offset: 2}},
			cancel:   cancel,
		}
		consumer := &Consumer{r: reader, logger: discardLogger(), backoff: time.Millisecond}

		attempts := map[int64]int{}
		err := consumer.Start(ctx, func(_ context.Context, m kafka.Message) error {
			attempts[m.Offset]++
			if m.Offset == 1 && attempts[m.Offset] < 3 {
				return errors.New("temporary")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts[1])
		assert.Equal(t, 1, attempts[2])
		require.Len(t, reader.committed, 2)
		assert.Equal(t, int64(1), reader.committed[0].Offset)
		assert.Equal(t, int64(2), reader.committed[1].Offset)
	})
}
