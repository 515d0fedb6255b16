package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)
	require.NotEqual(t, "Secret1", hash)

	ok, err := CheckPassword("Secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("Secret2", hash)
	require.NoError(t, err)
	assert.False(t, ok, "mismatch must not verify")
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordHashCost, cost)
}

func TestHashPasswordRandomized(t *testing.T) {
	first, err := HashPassword("Secret1")
	require.NoError(t, err)
	second, err := HashPassword("Secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt salts must differ")
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	_, err := CheckPassword("Secret1", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
