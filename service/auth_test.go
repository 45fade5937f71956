package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
	"go.morpionai.com/account/event"
	"gorm.io/gorm"
)

type stubGoogleVerifier struct {
	profile *core.GoogleProfile
	err     error
}

func (s *stubGoogleVerifier) Verify(ctx context.Context, accessToken string) (*core.GoogleProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type authFixture struct {
	db       *gorm.DB
	users    *UserServiceDefault
	profiles *ProfileServiceDefault
	sessions *SessionServiceDefault
	otp      *OTPServiceDefault
	google   *stubGoogleVerifier
	auth     *AuthServiceDefault
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := newTestConfig()
	gdb := newTestDB(t)
	logger := newTestLogger()

	users := NewUserService(cfg, gdb, logger)
	profiles := NewProfileService(cfg, gdb, logger)
	sessions := NewSessionService(cfg, gdb, logger, users, profiles)
	otp := NewOTPService(cfg, gdb, logger, users, &recordingMailer{})
	google := &stubGoogleVerifier{}

	return &authFixture{
		db:       gdb,
		users:    users,
		profiles: profiles,
		sessions: sessions,
		otp:      otp,
		google:   google,
		auth:     NewAuthService(cfg, logger, users, profiles, sessions, otp, google, event.NewManager()),
	}
}

func registerParams(email string, username string) core.RegisterParams {
	return core.RegisterParams{
		Email:     email,
		Username:  username,
		Kind:      core.AccountKindEmail,
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	profile, err := f.profiles.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.NotEmpty(t, profile.DisplayName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	_, err = f.auth.Register(registerParams("alice@example.com", "alice2"))
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyEmailAlreadyExists))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	_, err = f.auth.Register(registerParams("bob@example.com", "alice"))
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyUsernameAlreadyExists))
}

func TestRegisterMissingFields(t *testing.T) {
	f := newAuthFixture(t)

	params := registerParams("alice@example.com", "alice")
	params.Password = ""

	_, err := f.auth.Register(params)
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyMissingRequiredField))
}

func TestLoginPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	result, err := f.auth.LoginPassword("alice@example.com", "password123", "firefox", "paris")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotNil(t, result.Profile)
}

func TestLoginFailureMessageUnified(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	_, wrongPasswordErr := f.auth.LoginPassword("alice@example.com", "wrong", "", "")
	require.Error(t, wrongPasswordErr)

	_, unknownEmailErr := f.auth.LoginPassword("nobody@example.com", "password123", "", "")
	require.Error(t, unknownEmailErr)

	// An attacker probing for registered emails sees the same failure
	// either way.
	wrongPassword := core.AsAccountError(wrongPasswordErr)
	unknownEmail := core.AsAccountError(unknownEmailErr)
	require.NotNil(t, wrongPassword)
	require.NotNil(t, unknownEmail)
	assert.Equal(t, wrongPassword.Key, unknownEmail.Key)
	assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
}

func TestLoginPasswordAgainstGoogleAccount(t *testing.T) {
	f := newAuthFixture(t)

	params := registerParams("alice@example.com", "alice")
	params.Kind = core.AccountKindGoogle
	params.Password = ""

	_, err := f.auth.Register(params)
	require.NoError(t, err)

	_, err = f.auth.LoginPassword("alice@example.com", "password123", "", "")
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyInvalidLogin))
}

func TestLoginGoogleAutoProvisions(t *testing.T) {
	f := newAuthFixture(t)
	f.google.profile = &core.GoogleProfile{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		SubjectID: "google-123",
	}

	result, err := f.auth.LoginGoogle(context.Background(), "provider-token", "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, string(core.AccountKindGoogle), result.User.AccountType)
	assert.Contains(t, result.User.Username, "alice")

	// Second login reuses the account.
	again, err := f.auth.LoginGoogle(context.Background(), "provider-token", "", "")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)
}

func TestLoginGoogleAgainstPasswordAccount(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	f.google.profile = &core.GoogleProfile{Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"}

	_, err = f.auth.LoginGoogle(context.Background(), "provider-token", "", "")
	require.Error(t, err)

	accErr := core.AsAccountError(err)
	require.NotNil(t, accErr)
	assert.True(t, accErr.IsErrorType(core.ErrKeyAccountKindMismatch))
}

func TestLoginGoogleVerificationFailureFailsClosed(t *testing.T) {
	f := newAuthFixture(t)
	f.google.err = core.NewAccountError(core.ErrKeyOAuthVerificationFailed, errors.New("provider unreachable"))

	_, err := f.auth.LoginGoogle(context.Background(), "provider-token", "", "")
	require.Error(t, err)
}

func TestDeleteAccountRevokesEverything(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	result, err := f.auth.LoginPassword("alice@example.com", "password123", "", "")
	require.NoError(t, err)

	tokenID, err := f.otp.Generate(context.Background(), "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, f.auth.DeleteAccount(result.User.ID))

	exists, _, err := f.users.EmailExists("alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = f.profiles.GetByUserID(result.User.ID)
	require.Error(t, err)

	_, err = f.sessions.Refresh(result.SessionID)
	require.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.LoginSession{}).Where(&models.LoginSession{UserID: result.User.ID}).Count(&count).Error)
	assert.Zero(t, count)

	var otpCount int64
	require.NoError(t, f.db.Model(&models.OTPToken{}).Where(&models.OTPToken{Email: "alice@example.com"}).Count(&otpCount).Error)
	assert.Zero(t, otpCount)

	valid, err := f.otp.Validate(tokenID, "123456")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	require.NoError(t, f.auth.ChangePassword("alice", "password123", "newpassword456"))

	_, err = f.auth.LoginPassword("alice@example.com", "password123", "", "")
	require.Error(t, err)

	_, err = f.auth.LoginPassword("alice@example.com", "newpassword456", "", "")
	require.NoError(t, err)
}

func TestUpdateUsernamePropagatesToProfile(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Register(registerParams("alice@example.com", "alice"))
	require.NoError(t, err)

	require.NoError(t, f.auth.UpdateUsername("alice@example.com", "wonderland"))

	profile, err := f.profiles.GetByUsername("wonderland")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
}
