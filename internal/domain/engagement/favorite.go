package engagement

import (
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Favorite is a user's bookmark of an event.
// At most one row exists per (user, event) pair.
type Favorite struct {
	shared.BaseEntity
	UserID  uuid.UUID
	EventID uuid.UUID
}

// NewFavorite creates a favorite association
func NewFavorite(userID, eventID uuid.UUID) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}

	return &Favorite{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		EventID:    eventID,
	}, nil
}
