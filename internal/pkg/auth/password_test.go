package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cure-password")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cure-password", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cure-password")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cure-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("not-a-hash", "s3cure-password"))
}

func TestHashPasswordUnique(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}
