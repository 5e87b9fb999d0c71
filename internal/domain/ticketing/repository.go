package ticketing

import (
	"context"

	"github.com/google/uuid"
)

// TicketRepository defines the persistence interface for tickets
type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	// FindByUser returns the user's tickets, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Ticket, error)
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
}
