package postgres

import (
	"context"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&locationrepo.LocationDTO{},
		&productrepo.ProductDTO{},
		&shipmentrepo.GroupDTO{},
		&shipmentrepo.MembershipDTO{},
		&notificationrepo.NotificationDTO{},
		&auditrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema. The open-membership index is
// partial, which AutoMigrate cannot express, so it is created separately.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (product_id) WHERE active",
		shipmentrepo.OpenMembershipIndex, shipmentrepo.MembershipDTO{}.TableName(),
	)
	if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("create open membership index: %w", err)
	}
	return nil
}
