package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/citytickets/backend/internal/domain/ticketing"
	"github.com/citytickets/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTicketRepository implements ticketing.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GORM-backed ticket repository
func NewGormTicketRepository(db *gorm.DB) ticketing.TicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by ID, returning nil when not found
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticketing.Ticket, error) {
	var model models.TicketModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket by id: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's tickets, newest first
func (r *GormTicketRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ticketing.Ticket, error) {
	var rows []models.TicketModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets by user: %w", err)
	}

	tickets := make([]ticketing.Ticket, len(rows))
	for i := range rows {
		tickets[i] = *rows[i].ToDomain()
	}
	return tickets, nil
}

// FindByEvent returns all tickets issued for the event
func (r *GormTicketRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]ticketing.Ticket, error) {
	var rows []models.TicketModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets by event: %w", err)
	}

	tickets := make([]ticketing.Ticket, len(rows))
	for i := range rows {
		tickets[i] = *rows[i].ToDomain()
	}
	return tickets, nil
}

// Save persists a new ticket
func (r *GormTicketRepository) Save(ctx context.Context, ticket *ticketing.Ticket) error {
	var model models.TicketModel
	model.FromDomain(ticket)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return nil
}

// Update persists changes to an existing ticket
func (r *GormTicketRepository) Update(ctx context.Context, ticket *ticketing.Ticket) error {
	var model models.TicketModel
	model.FromDomain(ticket)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}
