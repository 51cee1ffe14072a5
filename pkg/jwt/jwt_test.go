package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("unit-test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(secret, 42, "a@b.c", []string{"Admin", "Customer"}, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.True(t, claims.HasRole("Admin"))
	assert.False(t, claims.HasRole("Owner"))
	assert.False(t, ShouldRefresh(claims, time.Minute))
	assert.True(t, ShouldRefresh(claims, 2*time.Hour))
}

func TestParseWrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, 1, "a@b.c", nil, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), token)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	token, err := GenerateToken(secret, 1, "a@b.c", nil, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}
