package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

func TestGenAndParseToken(t *testing.T) {
	token, claims, err := GenToken("u1", "u1@example.com", []byte(secret), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	parsed, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserId)
	assert.Equal(t, "u1@example.com", parsed.Email)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "guild", parsed.Issuer)
}

func TestParseToken_Expired(t *testing.T) {
	token, _, err := GenToken("u1", "u1@example.com", []byte(secret), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenToken("u1", "u1@example.com", []byte(secret), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", secret)
	assert.Error(t, err)
}
