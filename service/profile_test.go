package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
)

func newProfileFixture(t *testing.T) *ProfileServiceDefault {
	t.Helper()
	return NewProfileService(newTestConfig(), newTestDB(t), newTestLogger())
}

func seedProfile(t *testing.T, profiles *ProfileServiceDefault, userID uint, username string, displayName string, email string) {
	t.Helper()

	require.NoError(t, profiles.CreateProfile(&models.Profile{
		UserID:      userID,
		Email:       email,
		Username:    username,
		DisplayName: displayName,
		FirstName:   "Alice",
		LastName:    "Smith",
	}))
}

func TestGenerateRandomDisplayNameShape(t *testing.T) {
	profiles := newProfileFixture(t)

	for i := 0; i < 50; i++ {
		name := profiles.GenerateRandomDisplayName()
		assert.NotEmpty(t, name)
		assert.NotContains(t, name, " ")
	}
}

func TestAssignRandomDisplayName(t *testing.T) {
	profiles := newProfileFixture(t)
	seedProfile(t, profiles, 1, "alice", "", "alice@example.com")

	name, err := profiles.AssignRandomDisplayName(1)
	require.NoError(t, err)
	require.NotEmpty(t, name)

	profile, err := profiles.GetByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, name, profile.DisplayName)

	// An already named profile keeps its name.
	again, err := profiles.AssignRandomDisplayName(1)
	require.NoError(t, err)
	assert.Equal(t, name, again)
}

func TestProfileSearch(t *testing.T) {
	profiles := newProfileFixture(t)
	seedProfile(t, profiles, 1, "alice", "SwiftStriker", "alice@example.com")
	seedProfile(t, profiles, 2, "bob", "ShadowHunter", "bob@example.com")
	seedProfile(t, profiles, 3, "carol", "SwiftSeeker", "carol@example.com")

	results, err := profiles.Search("Swift", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = profiles.Search("bob", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint(2), results[0].UserID)

	results, err = profiles.Search("", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = profiles.Search("nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProfileSearchLimit(t *testing.T) {
	profiles := newProfileFixture(t)
	for i := uint(1); i <= 5; i++ {
		seedProfile(t, profiles, i, string(rune('a'+i))+"player", "Player", "")
	}

	results, err := profiles.Search("player", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestProfileUpdateInfo(t *testing.T) {
	profiles := newProfileFixture(t)
	seedProfile(t, profiles, 1, "alice", "SwiftStriker", "alice@example.com")

	updated, err := profiles.UpdateInfo(1, "Alicia", "Smythe", "NewName", "hello there")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "NewName", updated.DisplayName)
	assert.Equal(t, "hello there", updated.Bio)

	_, err = profiles.UpdateInfo(1, "", "Smythe", "NewName", "")
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyMissingRequiredField))
}

func TestProfileImageSetAndRemove(t *testing.T) {
	profiles := newProfileFixture(t)
	seedProfile(t, profiles, 1, "alice", "SwiftStriker", "alice@example.com")

	updated, err := profiles.SetProfileImage(1, "https://img.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.png", updated.ProfileImage)

	updated, err = profiles.RemoveProfileImage(1)
	require.NoError(t, err)
	assert.Empty(t, updated.ProfileImage)
}

func TestProfileGetUnknown(t *testing.T) {
	profiles := newProfileFixture(t)

	_, err := profiles.GetByUserID(999)
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyProfileNotFound))
}
