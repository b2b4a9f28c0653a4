package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a ledger entry for one issued refresh token.
// TokenHash is the SHA-256 hex of the raw token: the raw value is never
// persisted, so a database dump cannot be replayed as a session.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenPair issued by the token manager on register, login and refresh
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
