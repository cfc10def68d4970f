package token

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mint signs a token with an arbitrary secret. The validator never checks
// signatures, so the key does not matter.
func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiredAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{
			name:    "future exp is live",
			token:   mint(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			expired: false,
		},
		{
			name:    "past exp is expired",
			token:   mint(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			expired: true,
		},
		{
			name:    "exp exactly now is expired",
			token:   mint(t, jwt.MapClaims{"exp": now.Unix()}),
			expired: true,
		},
		{
			name:    "missing exp claim fails closed",
			token:   mint(t, jwt.MapClaims{"sub": "42"}),
			expired: true,
		},
		{
			name:    "empty token fails closed",
			token:   "",
			expired: true,
		},
		{
			name:    "malformed token fails closed",
			token:   "not.a.token",
			expired: true,
		},
		{
			name:    "garbage fails closed",
			token:   "zzzz",
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, ExpiredAt(tt.token, now))
		})
	}
}

func TestExpiredUsesWallClock(t *testing.T) {
	live := mint(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	dead := mint(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})

	assert.False(t, Expired(live))
	assert.True(t, Expired(dead))
}

func TestExpiredIgnoresSignature(t *testing.T) {
	// Same claims, different key: still readable, still live. The validator
	// is an expiry pre-check, not a verification step.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("a-completely-different-secret"))
	require.NoError(t, err)

	assert.False(t, Expired(signed))
}
