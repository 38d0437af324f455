// Package shipmentrepo persists shipment groups and their memberships.
//
// A membership row stays in the table after the product leaves the group;
// RemovedAt marks the split. Active is true while the product counts as
// bundled, and a partial unique index over active rows keeps a product in at
// most one open group even under concurrent resolutions.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// OpenMembershipIndex is created by the migration; violating it means a
// product was claimed by two open groups.
const OpenMembershipIndex = "ux_shipment_memberships_open_product"

type GroupDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status         string          `gorm:"type:varchar(32);not null;index"`
	Carrier        string          `gorm:"type:varchar(32);not null"`
	TrackingNumber *string         `gorm:"type:varchar(64);uniqueIndex"`
	Version        int             `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
	Memberships    []MembershipDTO `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

func (GroupDTO) TableName() string {
	return "shipment_groups"
}

type MembershipDTO struct {
	GroupID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID  `gorm:"type:uuid;primaryKey;index"`
	Position  int        `gorm:"not null"`
	Active    bool       `gorm:"not null"`
	RemovedAt *time.Time `gorm:"index"`
}

func (MembershipDTO) TableName() string {
	return "shipment_memberships"
}

func fromDomain(g *shipment.Group) GroupDTO {
	groupID := g.ID().Bytes()
	memberships := make([]MembershipDTO, 0, len(g.Members()))
	for i, m := range g.Members() {
		memberships = append(memberships, MembershipDTO{
			GroupID:   groupID,
			ProductID: m.Bytes(),
			Position:  i,
			Active:    g.IsOpen(),
		})
	}

	var tracking *string
	if g.IsLabeled() {
		number := g.TrackingNumber()
		tracking = &number
	}

	return GroupDTO{
		ID:             groupID,
		OwnerID:        g.OwnerID().Bytes(),
		Status:         g.Status().String(),
		Carrier:        g.Carrier().String(),
		TrackingNumber: tracking,
		Version:        g.Version(),
		CreatedAt:      g.CreatedAt(),
		UpdatedAt:      g.UpdatedAt(),
		Memberships:    memberships,
	}
}

// toDomain expects Memberships to hold only current members, in position
// order.
func toDomain(dto GroupDTO) (*shipment.Group, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	carrier, err := shipment.ParseCarrier(dto.Carrier)
	if err != nil {
		return nil, err
	}

	members := make([]kernel.UUID, 0, len(dto.Memberships))
	for _, m := range dto.Memberships {
		memberID, idErr := kernel.UUIDFromBytes(m.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		members = append(members, memberID)
	}

	var tracking string
	if dto.TrackingNumber != nil {
		tracking = *dto.TrackingNumber
	}

	return shipment.RestoreGroup(id, ownerID, status, carrier, tracking, members, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}
