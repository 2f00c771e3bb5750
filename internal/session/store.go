package session

import (
	"context"

	"lms-backend/internal/user/domain"
)

// Session is the server-side record of an authenticated user, keyed by user
// id. Its presence is what makes access and refresh tokens effective: logout
// deletes it, which revokes both tokens regardless of their expiry.
//
// RefreshTokenID is the jti of the most recently issued refresh token.
// Rotation overwrites it, so a previously issued refresh token is rejected
// even while its signature and expiry are still valid.
type Session struct {
	UserID         string      `json:"userId"`
	User           domain.User `json:"user"`
	RefreshTokenID string      `json:"refreshTokenId"`
}

// Store holds sessions in the key-value store. Implementations give every
// entry a lifetime equal to the refresh-token lifetime so the session cannot
// outlive the credentials that point at it.
type Store interface {
	// Save writes the session and resets its TTL.
	Save(ctx context.Context, s Session) error
	// Get returns nil without error when no session exists.
	Get(ctx context.Context, userID string) (*Session, error)
	// Delete is a no-op when the session is already absent.
	Delete(ctx context.Context, userID string) error
}
