package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/citytickets/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventRepository implements catalog.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM-backed event repository
func NewGormEventRepository(db *gorm.DB) catalog.EventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by ID, returning nil when not found
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Event, error) {
	var model models.EventModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find event by id: %w", err)
	}
	return model.ToDomain(), nil
}

// Search returns events matching the filter, ordered by start time
func (r *GormEventRepository) Search(ctx context.Context, filter catalog.EventFilter) ([]catalog.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.EventModel{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.StartsBefore != nil {
		query = query.Where("starts_at < ?", *filter.StartsBefore)
	}

	var rows []models.EventModel
	if err := query.Order("starts_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	events := make([]catalog.Event, len(rows))
	for i := range rows {
		events[i] = *rows[i].ToDomain()
	}
	return events, nil
}

// Save persists a new event
func (r *GormEventRepository) Save(ctx context.Context, event *catalog.Event) error {
	var model models.EventModel
	model.FromDomain(event)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// Update persists changes to an existing event
func (r *GormEventRepository) Update(ctx context.Context, event *catalog.Event) error {
	var model models.EventModel
	model.FromDomain(event)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// Delete removes the event and, through FK cascades, its tickets,
// favorites and cart items
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EventModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// GormVenueRepository implements catalog.VenueRepository using GORM
type GormVenueRepository struct {
	db *gorm.DB
}

// NewGormVenueRepository creates a new GORM-backed venue repository
func NewGormVenueRepository(db *gorm.DB) catalog.VenueRepository {
	return &GormVenueRepository{db: db}
}

// FindByID finds a venue by ID, returning nil when not found
func (r *GormVenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Venue, error) {
	var model models.VenueModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find venue by id: %w", err)
	}
	return model.ToDomain(), nil
}

// List returns all venues ordered by name
func (r *GormVenueRepository) List(ctx context.Context) ([]catalog.Venue, error) {
	var rows []models.VenueModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	venues := make([]catalog.Venue, len(rows))
	for i := range rows {
		venues[i] = *rows[i].ToDomain()
	}
	return venues, nil
}

// Save persists a new venue
func (r *GormVenueRepository) Save(ctx context.Context, venue *catalog.Venue) error {
	var model models.VenueModel
	model.FromDomain(venue)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save venue: %w", err)
	}
	return nil
}
