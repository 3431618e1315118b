package service

import (
	"time"
)

// TokenType is the marker returned next to an issued token.
const TokenType = "bearer"

// Claims is the identity carried by a token.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiresIn returns the remaining lifetime relative to now, or zero once expired.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c == nil {
		return 0
	}

	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// TokenService issues and verifies signed, time-bounded identity tokens.
// Verification is binary: callers learn only whether the token is usable.
type TokenService interface {
	// Issue signs claims.UserID and claims.Email with iat=now and exp=now+ttl.
	// IssuedAt and ExpiresAt on the input are ignored.
	Issue(claims Claims, ttl time.Duration) (string, error)

	// Verify returns the embedded claims, or false for any malformed, forged,
	// incomplete or expired token.
	Verify(token string) (*Claims, bool)

	// DefaultTTL is the configured general-purpose token lifetime.
	DefaultTTL() time.Duration

	// LoginTTL is the lifetime used for tokens minted by the login flow.
	LoginTTL() time.Duration
}
