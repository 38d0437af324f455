// Package kafkasales applies marketplace sale events to listed products.
package kafkasales

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler returns nil only when the message may be committed.
type Handler func(ctx context.Context, m kafka.Message) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	r       messageReader
	logger  *slog.Logger
	backoff time.Duration
}

func NewConsumer(brokers []string, group, topic string, logger *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})
	return &Consumer{r: r, logger: logger.With("component", "sales-consumer"), backoff: time.Second}
}

// Start reads until ctx is cancelled. A failing message is retried with a
// fixed backoff and is committed only once its handler succeeds, which keeps
// partition order.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		for {
			if err = h(ctx, m); err == nil {
				break
			}
			c.logger.ErrorContext(ctx, "sale event handling failed",
				"partition", m.Partition, "offset", m.Offset, "error", err)
			if !c.wait(ctx) {
				return nil
			}
		}

		if err = c.r.CommitMessages(ctx, m); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.backoff):
		return true
	}
}
