// Package token issues and validates opaque bearer session tokens.
//
// Tokens are random identifiers with no embedded claims; every lookup goes
// through the Store. Each principal holds at most one live session: issuing
// a new token atomically revokes whatever session the principal had before.
package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrTokenInvalid indicates the token is unknown or has been revoked.
	ErrTokenInvalid = errors.New("token is invalid or revoked")

	// ErrTokenExpired indicates the token was valid but its session lapsed.
	ErrTokenExpired = errors.New("token has expired")
)

// Session is one live authentication session.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has lapsed at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store persists sessions keyed by their opaque token.
type Store interface {
	// Issue creates a session for the user. All of the user's previous
	// sessions are revoked in the same step, so concurrent calls for one
	// user leave exactly one live session.
	Issue(ctx context.Context, userID uint, ttl time.Duration) (*Session, error)

	// Validate resolves a token to its session. Returns ErrTokenInvalid
	// for unknown or revoked tokens and ErrTokenExpired for lapsed ones.
	Validate(ctx context.Context, token string) (*Session, error)

	// Revoke removes a session. Revoking an already-revoked or unknown
	// token is a no-op, not an error.
	Revoke(ctx context.Context, token string) error

	// RevokeAll removes every session belonging to the user.
	RevokeAll(ctx context.Context, userID uint) error

	// Close releases any resources used by the store.
	Close() error
}

// secretBytes is the entropy carried by each token beyond its ULID prefix.
const secretBytes = 24

// NewToken generates an opaque token: a ULID for sortable uniqueness plus
// a random secret so tokens cannot be predicted from their issue time.
func NewToken() string {
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		// crypto/rand failing means the platform is broken; nothing
		// sensible can be issued.
		panic("token: crypto/rand unavailable: " + err.Error())
	}
	return ulid.Make().String() + "." + base64.RawURLEncoding.EncodeToString(secret)
}
