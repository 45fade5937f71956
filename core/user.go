package core

import (
	"go.morpionai.com/account/db/models"
)

type UserService interface {
	// EmailExists returns whether an account exists for the given email,
	// along with the account when it does.
	EmailExists(email string) (bool, *models.User, error)

	// UsernameExists returns whether an account exists for the given username.
	UsernameExists(username string) (bool, *models.User, error)

	// AccountExists returns whether an account exists for the given user ID.
	AccountExists(id uint) (bool, *models.User, error)

	// HashPassword hashes a plaintext password for storage.
	HashPassword(password string) (string, error)

	// CreateAccount persists a new account. Password is empty for delegated
	// account kinds.
	CreateAccount(email string, username string, password string, kind AccountKind, firstName string, lastName string) (*models.User, error)

	// ValidLoginByEmail checks a password against the stored hash for the
	// account with the given email.
	ValidLoginByEmail(email string, password string) (bool, *models.User, error)

	// UpdateAccountInfo applies a partial update to the account row.
	UpdateAccountInfo(userID uint, info map[string]any) error

	// UpdateEmail moves an account to a new email address. The new address
	// must not already be registered.
	UpdateEmail(currentEmail string, newEmail string) (*models.User, error)

	// UpdateUsername changes the account's username. The new username must
	// not already be taken.
	UpdateUsername(email string, username string) error

	// ChangePassword verifies the old password before storing a new hash.
	ChangePassword(username string, oldPassword string, newPassword string) error

	// UpdatePassword stores a new hash without verifying the old password.
	UpdatePassword(email string, newPassword string) error

	// Delete removes the account row. Session and profile cleanup is the
	// caller's responsibility.
	Delete(userID uint) error
}
