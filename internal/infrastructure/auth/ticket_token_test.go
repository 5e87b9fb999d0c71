package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketTokenRoundTrip(t *testing.T) {
	codec := NewTicketTokenCodec("test-secret", "citytickets", 365*24*time.Hour)
	now := time.Now()
	ticketID := uuid.New()

	token, err := codec.Issue(ticketID, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := codec.Decode(token, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ticketID, decoded)
}

func TestTicketTokenTampering(t *testing.T) {
	codec := NewTicketTokenCodec("test-secret", "citytickets", 365*24*time.Hour)
	now := time.Now()

	token, err := codec.Issue(uuid.New(), now)
	require.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		raw := []byte(token)
		mid := len(raw) / 2
		if raw[mid] == 'A' {
			raw[mid] = 'B'
		} else {
			raw[mid] = 'A'
		}

		_, err := codec.Decode(string(raw), now)
		assert.ErrorIs(t, err, ErrInvalidTicketToken)
	})

	t.Run("truncated token", func(t *testing.T) {
		_, err := codec.Decode(token[:len(token)-10], now)
		assert.ErrorIs(t, err, ErrInvalidTicketToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := codec.Decode("not-a-token", now)
		assert.ErrorIs(t, err, ErrInvalidTicketToken)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := codec.Decode("", now)
		assert.ErrorIs(t, err, ErrInvalidTicketToken)
	})
}

func TestTicketTokenMaxAge(t *testing.T) {
	maxAge := 365 * 24 * time.Hour
	codec := NewTicketTokenCodec("test-secret", "citytickets", maxAge)
	issuedAt := time.Now()

	token, err := codec.Issue(uuid.New(), issuedAt)
	require.NoError(t, err)

	t.Run("accepted just inside the limit", func(t *testing.T) {
		_, err := codec.Decode(token, issuedAt.Add(maxAge-time.Minute))
		assert.NoError(t, err)
	})

	t.Run("rejected past the limit", func(t *testing.T) {
		_, err := codec.Decode(token, issuedAt.Add(maxAge+time.Minute))
		assert.ErrorIs(t, err, ErrInvalidTicketToken)
	})
}

func TestTicketTokenWrongSecret(t *testing.T) {
	issuing := NewTicketTokenCodec("secret-one", "citytickets", time.Hour)
	verifying := NewTicketTokenCodec("secret-two", "citytickets", time.Hour)
	now := time.Now()

	token, err := issuing.Issue(uuid.New(), now)
	require.NoError(t, err)

	_, err = verifying.Decode(token, now)
	assert.ErrorIs(t, err, ErrInvalidTicketToken)
}

func TestTicketTokenRejectsSessionToken(t *testing.T) {
	// Both services share the application secret, but the ticket codec
	// derives a salted key and requires its own audience.
	secret := "shared-secret"
	sessions := NewJWTService(secret, "citytickets", time.Hour)
	codec := NewTicketTokenCodec(secret, "citytickets", time.Hour)

	user := validUser(t)
	sessionToken, err := sessions.Generate(user)
	require.NoError(t, err)

	_, err = codec.Decode(sessionToken, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTicketToken)
}
