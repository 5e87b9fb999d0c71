package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/citytickets/backend/internal/domain/engagement"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/citytickets/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFavoriteRepository implements engagement.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM-backed favorite repository
func NewGormFavoriteRepository(db *gorm.DB) engagement.FavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// FindByUserAndEvent finds the favorite for a (user, event) pair, nil when absent
func (r *GormFavoriteRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*engagement.Favorite, error) {
	var model models.FavoriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return model.ToDomain(), nil
}

// ListByUser returns the user's favorites, most recently added first
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]engagement.Favorite, error) {
	var rows []models.FavoriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]engagement.Favorite, len(rows))
	for i := range rows {
		favorites[i] = *rows[i].ToDomain()
	}
	return favorites, nil
}

// EventIDsByUser returns the event ids the user has favorited
func (r *GormFavoriteRepository) EventIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.FavoriteModel{}).
		Where("user_id = ?", userID).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorited event ids: %w", err)
	}
	return ids, nil
}

// Save persists a new favorite
func (r *GormFavoriteRepository) Save(ctx context.Context, favorite *engagement.Favorite) error {
	var model models.FavoriteModel
	model.FromDomain(favorite)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Delete removes a favorite by id
func (r *GormFavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FavoriteModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// GormCartRepository implements engagement.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM-backed cart repository
func NewGormCartRepository(db *gorm.DB) engagement.CartRepository {
	return &GormCartRepository{db: db}
}

// FindByUserAndEvent finds the cart item for a (user, event) pair, nil when absent
func (r *GormCartRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*engagement.CartItem, error) {
	var model models.CartItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUser returns the item only when it belongs to the user
func (r *GormCartRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*engagement.CartItem, error) {
	var model models.CartItemModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return model.ToDomain(), nil
}

// ListByUser returns the user's cart items, most recently added first
func (r *GormCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]engagement.CartItem, error) {
	var rows []models.CartItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	items := make([]engagement.CartItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// Save persists a new cart item
func (r *GormCartRepository) Save(ctx context.Context, item *engagement.CartItem) error {
	var model models.CartItemModel
	model.FromDomain(item)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// Update persists changes to an existing cart item
func (r *GormCartRepository) Update(ctx context.Context, item *engagement.CartItem) error {
	var model models.CartItemModel
	model.FromDomain(item)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// Delete removes a cart item by id
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}
