package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

// VerificationCodeRepository defines the persistence interface for one-time codes
type VerificationCodeRepository interface {
	// FindLatestActive returns the newest unused code matching the given
	// user, kind and code value, or nil if none exists.
	FindLatestActive(ctx context.Context, userID uuid.UUID, kind CodeKind, code string) (*VerificationCode, error)
	// SupersedeActive marks all unused codes for the user and kind as used
	SupersedeActive(ctx context.Context, userID uuid.UUID, kind CodeKind) error
	Save(ctx context.Context, code *VerificationCode) error
	Update(ctx context.Context, code *VerificationCode) error
}
