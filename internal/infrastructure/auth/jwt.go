package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iho/gcashledger/internal/domain"
)

const (
	issuer   = "gcashledger"
	audience = "gcashledger-api"
	// leeway absorbs clock drift between agent devices and the server.
	leeway = 30 * time.Second
)

// Claims identify the owner a session belongs to. Subject is the owner ID;
// Onboarded mirrors the owner's state when the token was minted.
type Claims struct {
	Email     string `json:"email"`
	Onboarded bool   `json:"onboarded,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) OwnerID() string {
	return c.Subject
}

// JWTManager mints and checks HS256 session tokens for owners.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secretKey), ttl: tokenDuration, now: time.Now}
}

// Generate returns a signed token for owner and the moment it expires.
func (m *JWTManager) Generate(owner *domain.Owner) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := Claims{
		Email:     owner.Email,
		Onboarded: owner.Onboarded,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   owner.ID,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify maps every failure to domain.ErrExpiredToken or
// domain.ErrInvalidToken so handlers never leak parser details.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrExpiredToken
	case err != nil:
		return nil, domain.ErrInvalidToken
	case claims.Subject == "":
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
