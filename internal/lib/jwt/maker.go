// Package jwt implements issuing and parsing of JWT tokens with custom claims.
package jwt

import (
	"time"
)

// Maker describes issuing and parsing of JWT tokens.
type Maker interface {
	// GenerateToken issues a token carrying the account uid, email and role.
	GenerateToken(accountUID, email, role string) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker using an HS256 secret key and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker creates a MakerImpl from the secret key and token lifetime.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
