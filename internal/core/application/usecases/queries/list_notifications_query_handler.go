package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type ListNotificationsQueryHandler struct {
	db *sqlx.DB
}

func NewListNotificationsQueryHandler(db *sqlx.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

type notificationRow struct {
	ID        uuid.UUID      `db:"id"`
	Kind      string         `db:"kind"`
	EntityID  uuid.UUID      `db:"entity_id"`
	Payload   types.JSONText `db:"payload"`
	Read      bool           `db:"read"`
	CreatedAt time.Time      `db:"created_at"`
}

func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []notificationRow
	err := h.db.SelectContext(ctx, &rows, `
		SELECT id, kind, entity_id, COALESCE(payload, 'null'::jsonb) AS payload, read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND (NOT $2 OR read = false)
		ORDER BY created_at DESC, id
	`, query.RecipientID().Bytes(), query.UnreadOnly())
	if err != nil {
		return nil, err
	}

	result := make([]ListNotificationsQueryResponse, 0, len(rows))
	for _, row := range rows {
		item := ListNotificationsQueryResponse{
			Kind:      row.Kind,
			Payload:   map[string]string{},
			Read:      row.Read,
			CreatedAt: row.CreatedAt.UTC(),
		}
		if item.ID, err = toKernelUUID(row.ID); err != nil {
			return nil, err
		}
		if item.EntityID, err = toKernelUUID(row.EntityID); err != nil {
			return nil, err
		}
		if err = decodeStringMap(row.Payload, item.Payload); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	return result, nil
}
