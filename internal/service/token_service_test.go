package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.IssueToken("user-alice")
	require.NoError(t, err)

	principal, err := tokens.ParsePrincipal(token)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", principal.UserID)
	assert.True(t, principal.Authenticated())
}

func TestTokenRejections(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	token, err := tokens.IssueToken("user-alice")
	require.NoError(t, err)

	other := NewTokenService("other-secret", time.Hour)
	_, err = other.ParsePrincipal(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.ParsePrincipal("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.IssueToken("")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	tokens.(*tokenService).now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tokens.IssueToken("user-alice")
	require.NoError(t, err)

	_, err = tokens.ParsePrincipal(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorContains(t, err, "expired")
}

func TestTokenWithoutUserClaim(t *testing.T) {
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).ParsePrincipal(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := jwtClaims{UserID: "user-alice"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).ParsePrincipal(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServicePanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { NewTokenService("", time.Hour) })
}
