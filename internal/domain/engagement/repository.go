package engagement

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository defines the persistence interface for favorites
type FavoriteRepository interface {
	FindByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	// EventIDsByUser returns the set of event ids the user has favorited
	EventIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Save(ctx context.Context, favorite *Favorite) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartRepository defines the persistence interface for cart items
type CartRepository interface {
	FindByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*CartItem, error)
	// FindByIDForUser returns the item only if it belongs to the user
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*CartItem, error)
	// ListByUser returns the user's items, most recently added first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Update(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
