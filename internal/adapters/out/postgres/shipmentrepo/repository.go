package shipmentrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type GormShipmentGroupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentGroupRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentGroupRepository {
	return &GormShipmentGroupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the group and its memberships. A member already held by
// another open group trips the partial unique index and is reported as
// AlreadyBundled.
func (r *GormShipmentGroupRepository) Add(ctx context.Context, aggregate *shipment.Group) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == OpenMembershipIndex {
			return errs.NewAlreadyBundledError(claimedProduct(pgErr.Detail), nil)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentGroupRepository) Update(ctx context.Context, aggregate *shipment.Group) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := dto
	next.Version++
	next.Memberships = nil
	result := r.db.WithContext(ctx).
		Model(&next).
		Where("version = ?", dto.Version).
		Select("status", "tracking_number", "version", "updated_at").
		Updates(&next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("shipment_group", aggregate.ID().String(), aggregate.Version())
	}

	if err := r.syncMemberships(ctx, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// syncMemberships marks split members as removed and, once the group is no
// longer open, frees every remaining member for future groups.
func (r *GormShipmentGroupRepository) syncMemberships(ctx context.Context, aggregate *shipment.Group) error {
	groupID := aggregate.ID().Bytes()
	members := make([]uuid.UUID, 0, len(aggregate.Members()))
	for _, m := range aggregate.Members() {
		members = append(members, m.Bytes())
	}

	removed := r.db.WithContext(ctx).
		Model(&MembershipDTO{}).
		Where("group_id = ? AND removed_at IS NULL", groupID)
	if len(members) > 0 {
		removed = removed.Where("product_id NOT IN ?", members)
	}
	if err := removed.Updates(map[string]any{"active": false, "removed_at": time.Now().UTC()}).Error; err != nil {
		return err
	}

	if aggregate.IsOpen() {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&MembershipDTO{}).
		Where("group_id = ? AND active", groupID).
		Update("active", false).Error
}

func (r *GormShipmentGroupRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Group, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GroupDTO
	err := r.db.WithContext(ctx).
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Where("removed_at IS NULL").Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment_group", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShipmentGroupRepository) FindOpenByProduct(ctx context.Context, productID kernel.UUID) (*shipment.Group, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var membership MembershipDTO
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND active", productID.Bytes()).
		Take(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	groupID, err := kernel.UUIDFromBytes(membership.GroupID[:])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, groupID)
}

func (r *GormShipmentGroupRepository) OpenMemberships(
	ctx context.Context,
	productIDs []kernel.UUID,
) (map[kernel.UUID]kernel.UUID, error) {
	open := make(map[kernel.UUID]kernel.UUID)
	if len(productIDs) == 0 {
		return open, nil
	}

	raw := make([]uuid.UUID, len(productIDs))
	for i, id := range productIDs {
		raw[i] = id.Bytes()
	}

	var memberships []MembershipDTO
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND active", raw).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	for _, m := range memberships {
		productID, idErr := kernel.UUIDFromBytes(m.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		groupID, idErr := kernel.UUIDFromBytes(m.GroupID[:])
		if idErr != nil {
			return nil, idErr
		}
		open[productID] = groupID
	}
	return open, nil
}

// claimedProduct pulls the product id out of a unique violation detail such
// as "Key (product_id)=(...) already exists.".
func claimedProduct(detail string) string {
	_, rest, ok := strings.Cut(detail, ")=(")
	if !ok {
		return detail
	}
	id, _, _ := strings.Cut(rest, ")")
	return id
}
