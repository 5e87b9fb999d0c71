package catalog

import (
	"context"
	"time"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TicketSettler resolves outstanding tickets when an event is cancelled
// or removed from sale
type TicketSettler interface {
	// CancelTicketsForEvent voids every active ticket of a cancelled event
	CancelTicketsForEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	// RefundTicketsForEventRemoval refunds every refundable ticket before
	// the event row disappears
	RefundTicketsForEventRemoval(ctx context.Context, eventID uuid.UUID) (int, error)
}

// EventService manages the event catalog
type EventService struct {
	events  catalog.EventRepository
	venues  catalog.VenueRepository
	settler TicketSettler
	logger  *zap.Logger
	now     func() time.Time
}

// NewEventService creates an EventService
func NewEventService(
	events catalog.EventRepository,
	venues catalog.VenueRepository,
	settler TicketSettler,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		events:  events,
		venues:  venues,
		settler: settler,
		logger:  logger,
		now:     time.Now,
	}
}

// ListRequest carries catalog browsing filters
type ListRequest struct {
	Query    string
	Category string
}

// List returns events matching the filters, soonest first
func (s *EventService) List(ctx context.Context, req ListRequest) ([]catalog.Event, error) {
	filter := catalog.EventFilter{Query: req.Query}
	if req.Category != "" {
		category := catalog.Category(req.Category)
		if !category.IsValid() {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid event category")
		}
		filter.Category = &category
	}
	return s.events.Search(ctx, filter)
}

// Get returns one event by id
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*catalog.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, shared.ErrNotFound
	}
	return event, nil
}

// CreateEventRequest carries event creation input
type CreateEventRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	Organizer       string          `json:"organizer"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	StartsAt        time.Time       `json:"starts_at" binding:"required"`
	AgeLimit        int             `json:"age_limit"`
	Category        string          `json:"category" binding:"required"`
	VenueID         *uuid.UUID      `json:"venue_id"`
}

// Create adds a new event to the catalog
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*catalog.Event, error) {
	if req.VenueID != nil {
		venue, err := s.venues.FindByID(ctx, *req.VenueID)
		if err != nil {
			return nil, err
		}
		if venue == nil {
			return nil, shared.NewDomainError("VENUE_NOT_FOUND", "Venue does not exist")
		}
	}

	event, err := catalog.NewEvent(
		req.Title, req.Description, req.Organizer,
		req.Price, req.DurationMinutes, req.StartsAt,
		req.AgeLimit, catalog.Category(req.Category), req.VenueID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title))
	return event, nil
}

// UpdateEventRequest carries partial event changes
type UpdateEventRequest struct {
	Price    *decimal.Decimal `json:"price"`
	StartsAt *time.Time       `json:"starts_at"`
	VenueID  *uuid.UUID       `json:"venue_id"`
}

// Update applies changes to an event. Ticket prices are unaffected, each
// ticket keeps the price it was bought at.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*catalog.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := event.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.StartsAt != nil {
		if err := event.Reschedule(*req.StartsAt); err != nil {
			return nil, err
		}
	}
	if req.VenueID != nil {
		venue, err := s.venues.FindByID(ctx, *req.VenueID)
		if err != nil {
			return nil, err
		}
		if venue == nil {
			return nil, shared.NewDomainError("VENUE_NOT_FOUND", "Venue does not exist")
		}
		event.SetVenue(req.VenueID)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Cancel marks the event cancelled and voids its active tickets.
// The event row stays visible so holders can see what happened.
func (s *EventService) Cancel(ctx context.Context, id uuid.UUID) (*catalog.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := event.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	voided, err := s.settler.CancelTicketsForEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event cancelled",
		zap.String("event_id", event.ID.String()),
		zap.Int("tickets_voided", voided))
	return event, nil
}

// Remove refunds the event's outstanding tickets and deletes the event.
// Favorites and cart items referencing it go with it by cascade.
func (s *EventService) Remove(ctx context.Context, id uuid.UUID) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	refunded, err := s.settler.RefundTicketsForEventRemoval(ctx, event.ID)
	if err != nil {
		return err
	}

	if err := s.events.Delete(ctx, event.ID); err != nil {
		return err
	}

	s.logger.Info("event removed",
		zap.String("event_id", event.ID.String()),
		zap.Int("tickets_refunded", refunded))
	return nil
}

// PurgePastEvents deletes events whose start time has passed.
// Tickets for past events need no refund, the show happened.
func (s *EventService) PurgePastEvents(ctx context.Context) (int, error) {
	now := s.now()
	past, err := s.events.Search(ctx, catalog.EventFilter{StartsBefore: &now})
	if err != nil {
		return 0, err
	}

	removed := 0
	for i := range past {
		if err := s.events.Delete(ctx, past[i].ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// CreateVenueRequest carries venue creation input
type CreateVenueRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity *int   `json:"capacity"`
}

// CreateVenue adds a venue
func (s *EventService) CreateVenue(ctx context.Context, req CreateVenueRequest) (*catalog.Venue, error) {
	venue, err := catalog.NewVenue(req.Name, req.Address, req.City, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.venues.Save(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// ListVenues returns all venues
func (s *EventService) ListVenues(ctx context.Context) ([]catalog.Venue, error) {
	return s.venues.List(ctx)
}
