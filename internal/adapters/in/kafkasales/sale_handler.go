package kafkasales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const EventMarketplaceSale = "marketplace.sale"

type SaleEnvelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type SalePayload struct {
	ProductID string `json:"product_id"`
	OrderID   string `json:"order_id"`
}

type ProductTransitioner interface {
	Handle(ctx context.Context, cmd commands.ApplyProductTransitionCommand) error
}

// SaleHandler marks products sold as the system actor. Malformed messages
// and domain rejections are logged and committed so one bad record cannot
// stall the partition. Anything else is returned for redelivery.
type SaleHandler struct {
	transitions ProductTransitioner
	logger      *slog.Logger
}

func NewSaleHandler(transitions ProductTransitioner, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{transitions: transitions, logger: logger.With("component", "sale-handler")}
}

func (h *SaleHandler) Handle(ctx context.Context, m kafka.Message) error {
	productID, skip, err := h.decode(m.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "dropping malformed sale event", "offset", m.Offset, "error", err)
		return nil
	}
	if skip {
		return nil
	}

	cmd, err := commands.NewApplyProductTransitionCommand(productID, product.Sold, kernel.SystemActor(), nil)
	if err != nil {
		h.logger.WarnContext(ctx, "dropping sale event", "product_id", productID.String(), "error", err)
		return nil
	}

	err = h.transitions.Handle(ctx, cmd)
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "product sold on marketplace", "product_id", productID.String())
		return nil
	case errors.Is(err, errs.ErrConflict):
		return err
	case errs.IsDomain(err):
		h.logger.WarnContext(ctx, "sale event rejected", "product_id", productID.String(), "error", err)
		return nil
	default:
		return err
	}
}

func (h *SaleHandler) decode(raw []byte) (kernel.UUID, bool, error) {
	var envelope SaleEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return kernel.UUID{}, false, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.EventType != EventMarketplaceSale {
		return kernel.UUID{}, true, nil
	}

	var payload SalePayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return kernel.UUID{}, false, fmt.Errorf("decode payload: %w", err)
	}
	productID, err := kernel.UUIDFromString(payload.ProductID)
	if err != nil {
		return kernel.UUID{}, false, err
	}
	return productID, false, nil
}
