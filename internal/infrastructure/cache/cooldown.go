package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PurchaseCooldown is the advisory anti-double-submit guard on purchases.
// It is keyed by (user, event) and is not a correctness guarantee: two
// truly concurrent requests can both pass before either key lands.
type PurchaseCooldown struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPurchaseCooldown creates a cooldown store with the given window
func NewPurchaseCooldown(client *redis.Client, ttl time.Duration) *PurchaseCooldown {
	return &PurchaseCooldown{client: client, ttl: ttl}
}

// Acquire returns true if no purchase for this (user, event) pair happened
// within the window and records this one.
func (c *PurchaseCooldown) Acquire(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("purchase:cooldown:%s:%s", userID, eventID)
	ok, err := c.client.SetNX(ctx, key, 1, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire purchase cooldown: %w", err)
	}
	return ok, nil
}
