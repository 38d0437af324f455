// Package locationrepo persists storage locations and their occupancy.
package locationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"

	"github.com/google/uuid"
)

type LocationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Capacity     int       `gorm:"not null;check:capacity >= 0"`
	CurrentCount int       `gorm:"not null;default:0;check:current_count >= 0 AND current_count <= capacity"`
	CreatedAt    time.Time
}

func (LocationDTO) TableName() string {
	return "locations"
}

func fromDomain(l *location.Location) LocationDTO {
	return LocationDTO{
		ID:           l.ID().Bytes(),
		Code:         l.Code(),
		Capacity:     l.Capacity(),
		CurrentCount: l.CurrentCount(),
		CreatedAt:    l.CreatedAt(),
	}
}

func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return location.RestoreLocation(id, dto.Code, dto.Capacity, dto.CurrentCount, dto.CreatedAt)
}
