package engagement

import (
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartItem is a user's intent to buy tickets for an event.
// At most one row exists per (user, event); re-adding merges quantities.
type CartItem struct {
	shared.BaseEntity
	UserID   uuid.UUID
	EventID  uuid.UUID
	Quantity int
}

// NewCartItem creates a cart item
func NewCartItem(userID, eventID uuid.UUID, quantity int) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		EventID:    eventID,
		Quantity:   quantity,
	}, nil
}

// AddQuantity merges an additional quantity into the item
func (i *CartItem) AddQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	i.Quantity += quantity
	i.Touch()

	return nil
}
