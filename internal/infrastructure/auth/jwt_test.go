package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gcashledger/internal/domain"
)

var epoch = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func frozenManager(secret string, at time.Time) *JWTManager {
	m := NewJWTManager(secret, time.Hour)
	m.now = func() time.Time { return at }
	return m
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := frozenManager("super-secret", epoch)
	owner := &domain.Owner{ID: "owner-123", Email: "maria@example.com", Onboarded: true}

	token, expiresAt, err := m.Generate(owner)
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(time.Hour), expiresAt)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-123", claims.OwnerID())
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.True(t, claims.Onboarded)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_LeewayAndExpiry(t *testing.T) {
	token, _, err := frozenManager("s", epoch).Generate(&domain.Owner{ID: "owner-1"})
	require.NoError(t, err)

	_, err = frozenManager("s", epoch.Add(time.Hour+10*time.Second)).Verify(token)
	assert.NoError(t, err, "within clock leeway")

	_, err = frozenManager("s", epoch.Add(2*time.Hour)).Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTManager_RejectsForeignTokens(t *testing.T) {
	m := frozenManager("secret", epoch)

	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func(mutate func(*jwt.RegisteredClaims)) Claims {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "owner-1",
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Minute)),
		}}
		mutate(&c.RegisteredClaims)
		return c
	}

	tests := map[string]string{
		"malformed":        "not-a-token",
		"wrong secret":     sign(jwt.SigningMethodHS256, []byte("other"), valid(func(*jwt.RegisteredClaims) {})),
		"hs512":            sign(jwt.SigningMethodHS512, []byte("secret"), valid(func(*jwt.RegisteredClaims) {})),
		"foreign issuer":   sign(jwt.SigningMethodHS256, []byte("secret"), valid(func(c *jwt.RegisteredClaims) { c.Issuer = "someone-else" })),
		"foreign audience": sign(jwt.SigningMethodHS256, []byte("secret"), valid(func(c *jwt.RegisteredClaims) { c.Audience = jwt.ClaimStrings{"billing"} })),
		"missing subject":  sign(jwt.SigningMethodHS256, []byte("secret"), valid(func(c *jwt.RegisteredClaims) { c.Subject = "" })),
		"no expiry":        sign(jwt.SigningMethodHS256, []byte("secret"), valid(func(c *jwt.RegisteredClaims) { c.ExpiresAt = nil })),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}
