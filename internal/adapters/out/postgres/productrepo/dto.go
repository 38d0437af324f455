// Package productrepo persists the product aggregate.
package productrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is the products table row. Version backs the optimistic check
// in Update.
type ProductDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status     string            `gorm:"type:varchar(32);not null;index"`
	LocationID *uuid.UUID        `gorm:"type:uuid;index"`
	Metadata   map[string]string `gorm:"type:jsonb;serializer:json"`
	Version    int               `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	var locationID *uuid.UUID
	if id := p.LocationID(); id != nil {
		raw := id.Bytes()
		locationID = &raw
	}

	return ProductDTO{
		ID:         p.ID().Bytes(),
		OwnerID:    p.OwnerID().Bytes(),
		Status:     p.Status().String(),
		LocationID: locationID,
		Metadata:   p.Metadata(),
		Version:    p.Version(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	status, err := product.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var locationID *kernel.UUID
	if dto.LocationID != nil {
		loc, locErr := kernel.UUIDFromBytes((*dto.LocationID)[:])
		if locErr != nil {
			return nil, locErr
		}
		locationID = &loc
	}

	return product.RestoreProduct(id, ownerID, status, locationID, dto.Metadata, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}
