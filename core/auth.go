package core

import (
	"context"

	"go.morpionai.com/account/db/models"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	AccessToken string
	SessionID   string
	User        *models.User
	Profile     *models.Profile
}

type RegisterParams struct {
	Email       string
	Username    string
	Kind        AccountKind
	Password    string
	FirstName   string
	LastName    string
	DisplayName string
}

type AuthService interface {
	// Register validates and persists a new account with its linked
	// profile. A welcome notification is sent best-effort; its failure
	// never fails registration.
	Register(params RegisterParams) (*models.User, error)

	// LoginPassword authenticates a password-kind account and mints a
	// session plus access token.
	LoginPassword(email string, password string, device string, location string) (*LoginResult, error)

	// LoginGoogle verifies the provided Google token with the identity
	// provider, auto-provisioning an account on first sight of the email,
	// and mints a session plus access token.
	LoginGoogle(ctx context.Context, accessToken string, device string, location string) (*LoginResult, error)

	// DeleteAccount removes the account, its profile and revokes every
	// session it owns.
	DeleteAccount(userID uint) error

	UpdateEmail(currentEmail string, newEmail string) (*models.User, error)
	UpdateUsername(email string, username string) error
	ChangePassword(username string, oldPassword string, newPassword string) error
	UpdatePassword(email string, newPassword string) error
}

// GoogleProfile is the verified identity claim set returned by the external
// identity provider.
type GoogleProfile struct {
	Email     string
	FirstName string
	LastName  string
	Picture   string
	SubjectID string
}

// GoogleVerifier validates a delegated OAuth token with the external
// provider. A timeout or provider error is a verification failure, never a
// success.
type GoogleVerifier interface {
	Verify(ctx context.Context, accessToken string) (*GoogleProfile, error)
}
