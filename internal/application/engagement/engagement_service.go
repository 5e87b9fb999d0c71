package engagement

import (
	"context"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/domain/engagement"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service manages favorites and the shopping cart
type Service struct {
	favorites engagement.FavoriteRepository
	cart      engagement.CartRepository
	events    catalog.EventRepository
}

// NewService creates an engagement Service
func NewService(
	favorites engagement.FavoriteRepository,
	cart engagement.CartRepository,
	events catalog.EventRepository,
) *Service {
	return &Service{favorites: favorites, cart: cart, events: events}
}

func (s *Service) requireEvent(ctx context.Context, eventID uuid.UUID) (*catalog.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, shared.ErrNotFound
	}
	return event, nil
}

// ToggleFavorite adds the event to favorites, or removes it when it is
// already there. Returns true when the event ends up favorited.
func (s *Service) ToggleFavorite(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return false, err
	}

	existing, err := s.favorites.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.favorites.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	favorite, err := engagement.NewFavorite(userID, eventID)
	if err != nil {
		return false, err
	}
	if err := s.favorites.Save(ctx, favorite); err != nil {
		// A concurrent toggle landed first; the event is favorited either way
		if err == shared.ErrAlreadyExists {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// FavoriteEvent pairs a favorite with the event it points at
type FavoriteEvent struct {
	FavoriteID uuid.UUID     `json:"favorite_id"`
	Event      catalog.Event `json:"event"`
}

// ListFavorites returns the user's favorited events, most recent first
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]FavoriteEvent, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]FavoriteEvent, 0, len(favorites))
	for i := range favorites {
		event, err := s.events.FindByID(ctx, favorites[i].EventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			continue
		}
		result = append(result, FavoriteEvent{FavoriteID: favorites[i].ID, Event: *event})
	}
	return result, nil
}

// FavoriteEventIDs returns the set of event ids the user has favorited
func (s *Service) FavoriteEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.favorites.EventIDsByUser(ctx, userID)
}

// AddToCart puts tickets for an event into the cart. Re-adding the same
// event merges quantities into the existing line.
func (s *Service) AddToCart(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*engagement.CartItem, error) {
	if _, err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	existing, err := s.cart.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := existing.AddQuantity(quantity); err != nil {
			return nil, err
		}
		if err := s.cart.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item, err := engagement.NewCartItem(userID, eventID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.cart.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFromCart deletes one cart line. Someone else's line id looks
// exactly like a nonexistent one.
func (s *Service) RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.cart.FindByIDForUser(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return shared.ErrNotFound
	}
	return s.cart.Delete(ctx, item.ID)
}

// CartLine is one cart row enriched with the event and its line total
type CartLine struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Event    catalog.Event   `json:"event"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is the user's cart with the grand total at current event prices
type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// ViewCart returns the cart priced at the events' current prices
func (s *Service) ViewCart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Lines: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for i := range items {
		event, err := s.events.FindByID(ctx, items[i].EventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			continue
		}
		subtotal := event.Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		cart.Lines = append(cart.Lines, CartLine{
			ItemID:   items[i].ID,
			Event:    *event,
			Quantity: items[i].Quantity,
			Subtotal: subtotal,
		})
		cart.Total = cart.Total.Add(subtotal)
	}
	return cart, nil
}
