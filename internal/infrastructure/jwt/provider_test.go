package jwtinfra

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prerna-auth/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, secret string) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{JWTSecret: secret, JWTExpiry: 7 * 24 * time.Hour})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTExpiry: time.Hour})
	assert.Error(t, err)
	_, err = NewProvider(&config.Config{JWTSecret: "x"})
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, "secret")

	signed, err := p.Sign("01HXUSER")
	require.NoError(t, err)

	claims, err := p.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "01HXUSER", claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := newTestProvider(t, "one").Sign("u1")
	require.NoError(t, err)
	_, err = newTestProvider(t, "two").Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t, "secret")
	signed, err := p.Sign("u1")
	require.NoError(t, err)

	p.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = p.Verify(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	p := newTestProvider(t, "secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = p.Verify(signed)
	assert.Error(t, err)
}
