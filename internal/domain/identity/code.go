package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CodeKind distinguishes what a one-time code authorizes
type CodeKind string

const (
	// CodeKindPasswordReset authorizes setting a new password
	CodeKindPasswordReset CodeKind = "password_reset"
	// CodeKindProfileEdit authorizes a time-boxed profile-edit grant
	CodeKindProfileEdit CodeKind = "profile_edit"
)

// IsValid checks if the kind is a known CodeKind
func (k CodeKind) IsValid() bool {
	switch k {
	case CodeKindPasswordReset, CodeKindProfileEdit:
		return true
	}
	return false
}

// String returns the string representation of CodeKind
func (k CodeKind) String() string {
	return string(k)
}

// CodeValidity is how long an issued code stays usable
const CodeValidity = 15 * time.Minute

// VerificationCode is a single-use 6-digit code emailed to a user.
// Issuing a new code for the same user and kind supersedes older ones.
type VerificationCode struct {
	shared.BaseEntity
	UserID uuid.UUID
	Kind   CodeKind
	Code   string
	Used   bool
}

// NewVerificationCode issues a fresh code for the given user and kind
func NewVerificationCode(userID uuid.UUID, kind CodeKind) (*VerificationCode, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_CODE_KIND", "Invalid code kind")
	}

	code, err := generateCode()
	if err != nil {
		return nil, shared.NewDomainError("CODE_GENERATION_ERROR", "Failed to generate code")
	}

	return &VerificationCode{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Kind:       kind,
		Code:       code,
	}, nil
}

// IsUsable reports whether the code can still be consumed at the given time
func (c *VerificationCode) IsUsable(now time.Time) bool {
	return !c.Used && now.Sub(c.CreatedAt) <= CodeValidity
}

// Consume marks the code as used. Fails with a single generic reason for
// both expired and already-used codes.
func (c *VerificationCode) Consume(now time.Time) error {
	if !c.IsUsable(now) {
		return shared.NewDomainError("CODE_INVALID", "Invalid or expired code")
	}

	c.Used = true
	c.Touch()

	return nil
}

// Supersede invalidates the code without consuming it
func (c *VerificationCode) Supersede() {
	c.Used = true
	c.Touch()
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
