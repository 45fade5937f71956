package core

import (
	"go.morpionai.com/account/db/models"
)

// SessionService owns the two-tier credential model: a stateless signed
// access token paired with a stateful login session. One session row exists
// per logical login; the session id is the opaque handle a client uses to
// mint fresh access tokens without re-authenticating.
type SessionService interface {
	// Create persists a new session row for the user with a freshly
	// generated session id.
	Create(userID uint, device string, location string) (*models.LoginSession, error)

	// Get returns the session row for the id, or ErrKeySessionNotFound.
	Get(sessionID string) (*models.LoginSession, error)

	ListForUser(userID uint) ([]models.LoginSession, error)

	// Mint creates a brand-new session and signs an access token carrying
	// the identity claims of the given account and profile. Every successful
	// login mints a distinct session; sessions are never merged or reused.
	Mint(user *models.User, profile *models.Profile, device string, location string) (accessToken string, sessionID string, err error)

	// Refresh looks up the session and, when present and unexpired, signs a
	// new access token from the account's and profile's current state. The
	// session id does not rotate. Expired rows are removed on sight.
	Refresh(sessionID string) (string, error)

	// Logout deletes the session row. Logging out an absent session
	// succeeds silently.
	Logout(sessionID string) error

	// LogoutAll revokes every session owned by the user.
	LogoutAll(userID uint) error
}
