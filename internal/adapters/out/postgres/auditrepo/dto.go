// Package auditrepo appends audit entries. Rows are never updated or
// deleted.
package auditrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

type EntryDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	EntityType string            `gorm:"type:varchar(32);not null;index:idx_audit_entity,priority:1"`
	EntityID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2"`
	FromStatus string            `gorm:"type:varchar(32);not null"`
	ToStatus   string            `gorm:"type:varchar(32);not null"`
	ActorID    uuid.UUID         `gorm:"type:uuid;not null"`
	RecordedAt time.Time         `gorm:"not null;index:idx_audit_entity,priority:3"`
	Context    map[string]string `gorm:"type:jsonb;serializer:json"`
}

func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(e audit.Entry) EntryDTO {
	return EntryDTO{
		ID:         e.ID().Bytes(),
		EntityType: e.EntityType(),
		EntityID:   e.EntityID().Bytes(),
		FromStatus: e.FromStatus(),
		ToStatus:   e.ToStatus(),
		ActorID:    e.ActorID().Bytes(),
		RecordedAt: e.Timestamp(),
		Context:    e.Context(),
	}
}
