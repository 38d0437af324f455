package queries

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// decodeStringMap copies a jsonb object into dst. SQL null and JSON null
// leave dst untouched.
func decodeStringMap(raw types.JSONText, dst map[string]string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var decoded map[string]string
	if err := raw.Unmarshal(&decoded); err != nil {
		return fmt.Errorf("decode jsonb column: %w", err)
	}
	for k, v := range decoded {
		dst[k] = v
	}
	return nil
}
