package identity

import (
	"testing"

	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active non-staff user with normalized phone", func(t *testing.T) {
		user, err := NewUser("8 701 123 45 67", "User@Example.COM", "secret1")
		require.NoError(t, err)

		assert.Equal(t, "+77011234567", user.Phone)
		assert.Equal(t, "user@example.com", user.Email)
		assert.True(t, user.Active)
		assert.False(t, user.Staff)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret1", user.PasswordHash)
	})

	tests := []struct {
		name     string
		phone    string
		email    string
		password string
		wantCode string
	}{
		{"bad phone", "12345", "a@b.kz", "secret1", "INVALID_PHONE"},
		{"empty email", "7011234567", "", "secret1", "INVALID_EMAIL"},
		{"malformed email", "7011234567", "not-an-email", "secret1", "INVALID_EMAIL"},
		{"short password", "7011234567", "a@b.kz", "12345", "INVALID_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.phone, tt.email, tt.password)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("7011234567", "a@b.kz", "correct-horse")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("correct-horse"))
	assert.False(t, user.VerifyPassword("wrong"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUserSetPassword(t *testing.T) {
	user, err := NewUser("7011234567", "a@b.kz", "oldpassword")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("newpassword"))
	assert.True(t, user.VerifyPassword("newpassword"))
	assert.False(t, user.VerifyPassword("oldpassword"))

	err = user.SetPassword("short")
	require.Error(t, err)
	assert.True(t, user.VerifyPassword("newpassword"))
}

func TestUserUpdateContact(t *testing.T) {
	user, err := NewUser("7011234567", "a@b.kz", "secret1")
	require.NoError(t, err)

	require.NoError(t, user.UpdateContact("+7 (702) 765-43-21", "New@B.kz"))
	assert.Equal(t, "+77027654321", user.Phone)
	assert.Equal(t, "new@b.kz", user.Email)

	err = user.UpdateContact("bad", "new@b.kz")
	require.Error(t, err)
	assert.Equal(t, "+77027654321", user.Phone)
}

func TestUserCanCheckInTickets(t *testing.T) {
	user, err := NewUser("7011234567", "a@b.kz", "secret1")
	require.NoError(t, err)

	assert.False(t, user.CanCheckInTickets())

	user.Staff = true
	assert.True(t, user.CanCheckInTickets())

	user.Deactivate()
	assert.False(t, user.CanCheckInTickets())
}
