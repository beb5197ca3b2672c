package service

import (
	"time"

	"github.com/google/uuid"
)

// Claims carries the verified content of a session token: who it was
// issued to and when. Expiry is derived from IssuedAt plus the configured
// lifetime and is enforced during Parse.
type Claims struct {
	UserID   uuid.UUID
	IssuedAt time.Time
}

// TokenService defines the interface for issuing and verifying signed
// session tokens. Tokens are client-held and not revocable server-side;
// invalidation happens through expiry or the password-changed-at check.
type TokenService interface {
	// Issue creates a new signed session token for the given account.
	Issue(userID uuid.UUID) (string, error)

	// Parse verifies a token's signature and lifetime and returns its
	// claims. Any failure (malformed token, bad signature, expired)
	// yields an error; there is no partially trusted result.
	Parse(token string) (*Claims, error)

	// TTL returns the configured session token lifetime.
	TTL() time.Duration
}
