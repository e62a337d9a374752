package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)
}

func TestHashPassword_TooShort(t *testing.T) {
	hash, err := HashPassword("short")

	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, hash)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct-horse-battery", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}
