package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("pw1")
	require.NoError(t, err)
	h2, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same plaintext must differ")

	ok, err := CheckPassword("pw1", h1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("pw1", h2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("correct")
	require.NoError(t, err)

	ok, err := CheckPassword("wrong", h)
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	ok, err := CheckPassword("anything", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrCorruptCredential)
}
