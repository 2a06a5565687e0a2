package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "staff", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, "staff", claims.Role)
}

func TestParseAccessToken_Expired(t *testing.T) {
	// Negative TTL puts the expiry in the past.
	tok, err := NewAccessToken(testSecret, 7, "public", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok.Token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, "public", 60)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok.Token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken(testSecret, "not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
