// Package notificationrepo persists seller notifications. Ids are derived
// from the event, so a repeated dispatch inserts nothing.
package notificationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_recipient_read,priority:1"`
	Kind        string            `gorm:"type:varchar(64);not null"`
	EntityID    uuid.UUID         `gorm:"type:uuid;not null"`
	Payload     map[string]string `gorm:"type:jsonb;serializer:json"`
	Read        bool              `gorm:"not null;default:false;index:idx_notifications_recipient_read,priority:2"`
	CreatedAt   time.Time         `gorm:"not null;index"`
	PublishedAt *time.Time        `gorm:"index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		RecipientID: n.RecipientID().Bytes(),
		Kind:        n.Kind().String(),
		EntityID:    n.EntityID().Bytes(),
		Payload:     n.Payload(),
		Read:        n.IsRead(),
		CreatedAt:   n.CreatedAt(),
		PublishedAt: n.PublishedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, recipientID, event.Kind(dto.Kind), entityID,
		dto.Payload, dto.Read, dto.CreatedAt, dto.PublishedAt)
}
