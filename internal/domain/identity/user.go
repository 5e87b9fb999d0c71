package identity

import (
	"regexp"
	"strings"

	"github.com/citytickets/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a customer or staff account.
// The phone number is the login identifier; email is a secondary unique
// identifier used for one-time codes and ticket delivery.
type User struct {
	shared.BaseEntity
	Phone        string
	Email        string
	PasswordHash string
	Active       bool
	Staff        bool
}

// NewUser creates a new active, non-staff user
func NewUser(phone, email, password string) (*User, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Enter a valid phone number")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Phone:        normalized,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Active:       true,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password without requiring the old one
// (password-reset flow; the one-time code is the proof of identity)
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = hash
	u.Touch()

	return nil
}

// UpdateContact changes the phone and email after re-validation
func (u *User) UpdateContact(phone, email string) error {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return shared.NewDomainError("INVALID_PHONE", "Enter a valid phone number")
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	u.Phone = normalized
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.Touch()

	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// CanCheckInTickets reports whether this account may mark tickets as used.
// Check-in is an explicit capability rather than a generic staff attribute
// consulted all over the codebase.
func (u *User) CanCheckInTickets() bool {
	return u.Staff && u.Active
}

// ValidatePassword checks the password policy
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Enter a valid email address")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
