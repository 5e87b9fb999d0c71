package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationCode(t *testing.T) {
	userID := uuid.New()

	code, err := NewVerificationCode(userID, CodeKindPasswordReset)
	require.NoError(t, err)

	assert.Equal(t, userID, code.UserID)
	assert.Equal(t, CodeKindPasswordReset, code.Kind)
	assert.Len(t, code.Code, 6)
	assert.False(t, code.Used)
	for _, r := range code.Code {
		assert.True(t, r >= '0' && r <= '9')
	}

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := NewVerificationCode(uuid.Nil, CodeKindPasswordReset)
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewVerificationCode(userID, CodeKind("something"))
		assert.Error(t, err)
	})
}

func TestVerificationCodeConsume(t *testing.T) {
	code, err := NewVerificationCode(uuid.New(), CodeKindProfileEdit)
	require.NoError(t, err)

	t.Run("consumes within validity", func(t *testing.T) {
		now := code.CreatedAt.Add(5 * time.Minute)
		require.True(t, code.IsUsable(now))
		require.NoError(t, code.Consume(now))
		assert.True(t, code.Used)
	})

	t.Run("second consume fails", func(t *testing.T) {
		err := code.Consume(code.CreatedAt.Add(6 * time.Minute))
		assert.Error(t, err)
	})
}

func TestVerificationCodeExpiry(t *testing.T) {
	code, err := NewVerificationCode(uuid.New(), CodeKindPasswordReset)
	require.NoError(t, err)

	atLimit := code.CreatedAt.Add(CodeValidity)
	assert.True(t, code.IsUsable(atLimit))

	pastLimit := code.CreatedAt.Add(CodeValidity + time.Second)
	assert.False(t, code.IsUsable(pastLimit))
	assert.Error(t, code.Consume(pastLimit))
}

func TestVerificationCodeSupersede(t *testing.T) {
	code, err := NewVerificationCode(uuid.New(), CodeKindPasswordReset)
	require.NoError(t, err)

	code.Supersede()
	assert.True(t, code.Used)
	assert.Error(t, code.Consume(code.CreatedAt.Add(time.Minute)))
}
