package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EditGrantStore holds short-lived profile-edit authorizations, granted by
// a one-time emailed code. The grant lives server-side, keyed by user,
// with an explicit expiry; nothing about it rides in the session.
type EditGrantStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEditGrantStore creates an EditGrantStore with the given grant lifetime
func NewEditGrantStore(client *redis.Client, ttl time.Duration) *EditGrantStore {
	return &EditGrantStore{client: client, ttl: ttl}
}

func (s *EditGrantStore) key(userID uuid.UUID) string {
	return fmt.Sprintf("profile:edit-grant:%s", userID)
}

// Grant authorizes the user to edit their profile for the grant lifetime
func (s *EditGrantStore) Grant(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Set(ctx, s.key(userID), time.Now().Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store edit grant: %w", err)
	}
	return nil
}

// Check reports whether the user currently holds a live grant
func (s *EditGrantStore) Check(ctx context.Context, userID uuid.UUID) (bool, error) {
	err := s.client.Get(ctx, s.key(userID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check edit grant: %w", err)
	}
	return true, nil
}

// Revoke consumes the grant after a successful profile save
func (s *EditGrantStore) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke edit grant: %w", err)
	}
	return nil
}
