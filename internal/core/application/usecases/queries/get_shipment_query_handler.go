package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ShipmentCache holds rendered shipment read models. Get returns nil, nil on
// a miss.
type ShipmentCache interface {
	Get(ctx context.Context, groupID kernel.UUID) (*GetShipmentQueryResponse, error)
	Set(ctx context.Context, shipment *GetShipmentQueryResponse) error
}

type GetShipmentQueryHandler struct {
	db     *sqlx.DB
	cache  ShipmentCache
	logger *slog.Logger
}

// NewGetShipmentQueryHandler reads through cache when it is not nil. Cache
// failures are logged and the database answers instead.
func NewGetShipmentQueryHandler(db *sqlx.DB, cache ShipmentCache, logger *slog.Logger) GetShipmentQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetShipmentQueryHandler{db: db, cache: cache, logger: logger}
}

type shipmentRow struct {
	ID             uuid.UUID      `db:"id"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	Status         string         `db:"status"`
	Carrier        string         `db:"carrier"`
	TrackingNumber sql.NullString `db:"tracking_number"`
	Members        pq.StringArray `db:"members"`
	Version        int            `db:"version"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (*GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, query.GroupID())
		if err != nil {
			h.logger.WarnContext(ctx, "shipment cache read failed",
				"group_id", query.GroupID().String(), "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	var row shipmentRow
	err := h.db.GetContext(ctx, &row, `
		SELECT g.id, g.owner_id, g.status, g.carrier, g.tracking_number, g.version, g.updated_at,
		       COALESCE(
		           array_agg(m.product_id::text ORDER BY m.position) FILTER (WHERE m.removed_at IS NULL),
		           '{}'
		       ) AS members
		FROM shipment_groups g
		LEFT JOIN shipment_memberships m ON m.group_id = g.id
		WHERE g.id = $1
		GROUP BY g.id
	`, query.GroupID().Bytes())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("groupID", query.GroupID())
	}
	if err != nil {
		return nil, err
	}

	response, err := row.toResponse()
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err = h.cache.Set(ctx, response); err != nil {
			h.logger.WarnContext(ctx, "shipment cache write failed",
				"group_id", query.GroupID().String(), "error", err)
		}
	}

	return response, nil
}

func (row shipmentRow) toResponse() (*GetShipmentQueryResponse, error) {
	id, err := toKernelUUID(row.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := toKernelUUID(row.OwnerID)
	if err != nil {
		return nil, err
	}
	carrier, err := shipment.ParseCarrier(row.Carrier)
	if err != nil {
		return nil, err
	}

	members := make([]kernel.UUID, 0, len(row.Members))
	for _, raw := range row.Members {
		memberID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		members = append(members, memberID)
	}

	kind := shipment.KindBundled
	switch len(members) {
	case 0:
		kind = shipment.KindEmpty
	case 1:
		kind = shipment.KindSingle
	}

	return &GetShipmentQueryResponse{
		ID:             id,
		OwnerID:        ownerID,
		Status:         row.Status,
		Kind:           string(kind),
		Carrier:        carrier.String(),
		TrackingNumber: row.TrackingNumber.String,
		TrackingURL:    carrier.TrackingURL(row.TrackingNumber.String),
		Members:        members,
		Version:        row.Version,
		UpdatedAt:      row.UpdatedAt.UTC(),
	}, nil
}
