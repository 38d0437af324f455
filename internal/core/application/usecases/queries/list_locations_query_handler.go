package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ListLocationsQueryHandler struct {
	db *sqlx.DB
}

func NewListLocationsQueryHandler(db *sqlx.DB) ListLocationsQueryHandler {
	return ListLocationsQueryHandler{db: db}
}

type locationRow struct {
	ID           uuid.UUID `db:"id"`
	Code         string    `db:"code"`
	Capacity     int       `db:"capacity"`
	CurrentCount int       `db:"current_count"`
}

func (h ListLocationsQueryHandler) Handle(ctx context.Context, query ListLocationsQuery) ([]ListLocationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []locationRow
	if err := h.db.SelectContext(ctx, &rows,
		`SELECT id, code, capacity, current_count FROM locations ORDER BY code`); err != nil {
		return nil, err
	}

	result := make([]ListLocationsQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := toKernelUUID(row.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ListLocationsQueryResponse{
			ID:           id,
			Code:         row.Code,
			Capacity:     row.Capacity,
			CurrentCount: row.CurrentCount,
			Free:         row.Capacity - row.CurrentCount,
		})
	}
	return result, nil
}
