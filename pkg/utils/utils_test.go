package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", h)
	assert.True(t, CheckPassword("password", h))
	assert.False(t, CheckPassword("Password", h))
	assert.False(t, CheckPassword("password", "not-a-hash"))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	h, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, CheckPassword(strings.Repeat("a", MaxPasswordBytes), h))
}

func TestNewToken(t *testing.T) {
	a, err := NewToken(32)
	require.NoError(t, err)
	b, err := NewToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNewID(t *testing.T) {
	assert.Len(t, NewID(), 36)
	assert.NotEqual(t, NewID(), NewID())
}
