package rediscache

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const DefaultClaimTTL = 10 * time.Minute

// RelayGuard claims notifications with SET NX so overlapping relay runs, on
// this instance or another, publish each notification once. A claim expires
// after ttl in case the claiming process dies before marking the row.
type RelayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRelayGuard(client *redis.Client, ttl time.Duration) *RelayGuard {
	if ttl <= 0 {
		ttl = DefaultClaimTTL
	}
	return &RelayGuard{client: client, ttl: ttl}
}

func relayKey(id kernel.UUID) string {
	return fmt.Sprintf("relay:%s", id)
}

func (g *RelayGuard) Claim(ctx context.Context, notificationID kernel.UUID) (bool, error) {
	return g.client.SetNX(ctx, relayKey(notificationID), 1, g.ttl).Result()
}

func (g *RelayGuard) Release(ctx context.Context, notificationID kernel.UUID) error {
	return g.client.Del(ctx, relayKey(notificationID)).Err()
}
