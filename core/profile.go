package core

import (
	"go.morpionai.com/account/db/models"
)

type ProfileService interface {
	GetByUserID(userID uint) (*models.Profile, error)
	GetByEmail(email string) (*models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)

	CreateProfile(profile *models.Profile) error

	// UpdateProfile applies a partial update and returns the updated row.
	UpdateProfile(userID uint, updates map[string]any) (*models.Profile, error)

	// UpdateInfo updates the profile fields a user edits from their own
	// profile page.
	UpdateInfo(userID uint, firstName string, lastName string, displayName string, bio string) (*models.Profile, error)

	SetProfileImage(userID uint, url string) (*models.Profile, error)
	RemoveProfileImage(userID uint) (*models.Profile, error)

	// Search matches the text as a substring of username, display name or
	// email, case-insensitive, up to limit rows.
	Search(text string, limit int) ([]models.Profile, error)

	// GenerateRandomDisplayName produces a game-style display name for
	// accounts created without one.
	GenerateRandomDisplayName() string

	// AssignRandomDisplayName fills in a display name if the profile has
	// none, and returns the effective display name either way.
	AssignRandomDisplayName(userID uint) (string, error)

	DeleteByUserID(userID uint) error
}
