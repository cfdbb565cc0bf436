package stub

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loanlink/internal/sentinel"
)

// tokenIssuer mints and verifies the stub's HS256 bearer tokens.
type tokenIssuer struct {
	key []byte
	ttl time.Duration
}

func newTokenIssuer(key string, ttl time.Duration) *tokenIssuer {
	return &tokenIssuer{key: []byte(key), ttl: ttl}
}

// Issue creates a signed token whose subject is the user id.
func (t *tokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    "loanlink-stub",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject user id.
func (t *tokenIssuer) Verify(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("token rejected: %w", sentinel.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token missing subject: %w", sentinel.ErrUnauthorized)
	}
	return claims.Subject, nil
}
