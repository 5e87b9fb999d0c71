package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/citytickets/backend/internal/domain/identity"
	"github.com/citytickets/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVerificationCodeRepository implements identity.VerificationCodeRepository using GORM
type GormVerificationCodeRepository struct {
	db *gorm.DB
}

// NewGormVerificationCodeRepository creates a new GORM-backed code repository
func NewGormVerificationCodeRepository(db *gorm.DB) identity.VerificationCodeRepository {
	return &GormVerificationCodeRepository{db: db}
}

// FindLatestActive returns the newest unused code matching user, kind and value
func (r *GormVerificationCodeRepository) FindLatestActive(ctx context.Context, userID uuid.UUID, kind identity.CodeKind, code string) (*identity.VerificationCode, error) {
	var model models.VerificationCodeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND code = ? AND used = ?", userID, kind.String(), code, false).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find verification code: %w", err)
	}
	return model.ToDomain(), nil
}

// SupersedeActive marks every unused code for the user and kind as used
func (r *GormVerificationCodeRepository) SupersedeActive(ctx context.Context, userID uuid.UUID, kind identity.CodeKind) error {
	err := r.db.WithContext(ctx).
		Model(&models.VerificationCodeModel{}).
		Where("user_id = ? AND kind = ? AND used = ?", userID, kind.String(), false).
		Update("used", true).Error
	if err != nil {
		return fmt.Errorf("failed to supersede verification codes: %w", err)
	}
	return nil
}

// Save persists a new verification code
func (r *GormVerificationCodeRepository) Save(ctx context.Context, code *identity.VerificationCode) error {
	var model models.VerificationCodeModel
	model.FromDomain(code)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save verification code: %w", err)
	}
	return nil
}

// Update persists changes to an existing verification code
func (r *GormVerificationCodeRepository) Update(ctx context.Context, code *identity.VerificationCode) error {
	var model models.VerificationCodeModel
	model.FromDomain(code)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to update verification code: %w", err)
	}
	return nil
}
