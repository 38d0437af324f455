package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	shipmentKeyPrefix  = "shipment:"
	DefaultShipmentTTL = 5 * time.Minute
)

// ShipmentCache stores GetShipmentQueryResponse values as JSON. Writes on the
// command side call Invalidate after commit, so the TTL only bounds how long
// a missed invalidation can serve stale data.
type ShipmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewShipmentCache(client *redis.Client, ttl time.Duration) *ShipmentCache {
	if ttl <= 0 {
		ttl = DefaultShipmentTTL
	}
	return &ShipmentCache{client: client, ttl: ttl}
}

func shipmentKey(groupID kernel.UUID) string {
	return shipmentKeyPrefix + groupID.String()
}

func (c *ShipmentCache) Get(ctx context.Context, groupID kernel.UUID) (*queries.GetShipmentQueryResponse, error) {
	raw, err := c.client.Get(ctx, shipmentKey(groupID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached queries.GetShipmentQueryResponse
	if err = json.Unmarshal(raw, &cached); err != nil {
		// An unreadable entry is treated as a miss and overwritten on the next Set.
		return nil, nil
	}
	return &cached, nil
}

func (c *ShipmentCache) Set(ctx context.Context, shipment *queries.GetShipmentQueryResponse) error {
	raw, err := json.Marshal(shipment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, shipmentKey(shipment.ID), raw, c.ttl).Err()
}

func (c *ShipmentCache) Invalidate(ctx context.Context, groupID kernel.UUID) error {
	return c.client.Del(ctx, shipmentKey(groupID)).Err()
}
