package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type ListAuditQueryHandler struct {
	db *sqlx.DB
}

func NewListAuditQueryHandler(db *sqlx.DB) ListAuditQueryHandler {
	return ListAuditQueryHandler{db: db}
}

type auditRow struct {
	ID         uuid.UUID      `db:"id"`
	EntityType string         `db:"entity_type"`
	EntityID   uuid.UUID      `db:"entity_id"`
	FromStatus string         `db:"from_status"`
	ToStatus   string         `db:"to_status"`
	ActorID    uuid.UUID      `db:"actor_id"`
	RecordedAt time.Time      `db:"recorded_at"`
	Context    types.JSONText `db:"context"`
}

func (h ListAuditQueryHandler) Handle(ctx context.Context, query ListAuditQuery) ([]ListAuditQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []auditRow
	err := h.db.SelectContext(ctx, &rows, `
		SELECT id, entity_type, entity_id, from_status, to_status, actor_id, recorded_at,
		       COALESCE(context, 'null'::jsonb) AS context
		FROM audit_entries
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY recorded_at, id
	`, query.EntityType(), query.EntityID().Bytes())
	if err != nil {
		return nil, err
	}

	entries := make([]ListAuditQueryResponse, 0, len(rows))
	for _, row := range rows {
		entry := ListAuditQueryResponse{
			EntityType: row.EntityType,
			FromStatus: row.FromStatus,
			ToStatus:   row.ToStatus,
			Timestamp:  row.RecordedAt.UTC(),
			Context:    map[string]string{},
		}

		if entry.ID, err = toKernelUUID(row.ID); err != nil {
			return nil, err
		}
		if entry.EntityID, err = toKernelUUID(row.EntityID); err != nil {
			return nil, err
		}
		if entry.ActorID, err = toKernelUUID(row.ActorID); err != nil {
			return nil, err
		}
		if err = decodeStringMap(row.Context, entry.Context); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
