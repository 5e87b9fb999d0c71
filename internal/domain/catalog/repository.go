package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFilter defines filtering options for event listings
type EventFilter struct {
	// Query matches against title and description, case-insensitive
	Query string
	// Category restricts to one category when set
	Category *Category
	// StartsBefore restricts to events starting before the given time
	StartsBefore *time.Time
}

// EventRepository defines the persistence interface for events
type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	// Search returns events matching the filter, ordered by start time
	Search(ctx context.Context, filter EventFilter) ([]Event, error)
	Save(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	// Delete removes the event; tickets, favorites and cart items
	// referencing it are removed by cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// VenueRepository defines the persistence interface for venues
type VenueRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	Save(ctx context.Context, venue *Venue) error
}
