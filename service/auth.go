package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	gookit "github.com/gookit/event"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
	"go.morpionai.com/account/event"
	"go.uber.org/zap"
)

var _ core.AuthService = (*AuthServiceDefault)(nil)

type AuthServiceDefault struct {
	config  config.Manager
	logger  *core.Logger
	user    core.UserService
	profile core.ProfileService
	session core.SessionService
	otp     core.OTPService
	google  core.GoogleVerifier
	events  *gookit.Manager
}

func NewAuthService(cm config.Manager, logger *core.Logger, user core.UserService, profile core.ProfileService, session core.SessionService, otp core.OTPService, google core.GoogleVerifier, events *gookit.Manager) *AuthServiceDefault {
	return &AuthServiceDefault{
		config:  cm,
		logger:  logger.Named("auth"),
		user:    user,
		profile: profile,
		session: session,
		otp:     otp,
		google:  google,
		events:  events,
	}
}

func (a *AuthServiceDefault) Register(params core.RegisterParams) (*models.User, error) {
	if params.Email == "" || params.Username == "" {
		return nil, core.NewAccountError(core.ErrKeyMissingRequiredField, nil)
	}

	if !params.Kind.Valid() {
		return nil, core.NewAccountError(core.ErrKeyAccountKindMismatch, nil)
	}

	if params.Kind == core.AccountKindEmail && params.Password == "" {
		return nil, core.NewAccountError(core.ErrKeyMissingRequiredField, nil)
	}

	if taken, _, err := a.user.UsernameExists(params.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, core.NewAccountError(core.ErrKeyUsernameAlreadyExists, nil)
	}

	user, err := a.user.CreateAccount(params.Email, params.Username, params.Password, params.Kind, params.FirstName, params.LastName)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:      user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: params.DisplayName,
	}

	if strings.TrimSpace(profile.DisplayName) == "" {
		profile.DisplayName = a.profile.GenerateRandomDisplayName()
	}

	if err := a.profile.CreateProfile(profile); err != nil {
		if delErr := a.user.Delete(user.ID); delErr != nil {
			a.logger.Error("failed to roll back account without profile", zap.Uint("userId", user.ID), zap.Error(delErr))
		}
		return nil, err
	}

	if err := event.FireUserCreated(a.events, user, profile); err != nil {
		a.logger.Warn("user created event failed", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return user, nil
}

func (a *AuthServiceDefault) LoginPassword(email string, password string, device string, location string) (*core.LoginResult, error) {
	valid, user, err := a.user.ValidLoginByEmail(email, password)
	if err != nil {
		if accErr := core.AsAccountError(err); accErr != nil && accErr.IsErrorType(core.ErrKeyInvalidLogin) {
			a.logger.Debug("login for unknown email", zap.String("email", email))
			return nil, core.NewAccountError(core.ErrKeyInvalidLogin, nil)
		}
		return nil, err
	}

	if !valid {
		a.logger.Debug("login with wrong password", zap.String("email", email))
		return nil, core.NewAccountError(core.ErrKeyInvalidLogin, nil)
	}

	if user.AccountType != string(core.AccountKindEmail) {
		a.logger.Debug("password login against non-password account", zap.String("email", email))
		return nil, core.NewAccountError(core.ErrKeyInvalidLogin, nil)
	}

	return a.mint(user, device, location)
}

func (a *AuthServiceDefault) LoginGoogle(ctx context.Context, accessToken string, device string, location string) (*core.LoginResult, error) {
	identity, err := a.google.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	exists, user, err := a.user.EmailExists(identity.Email)
	if err != nil {
		return nil, err
	}

	if exists {
		if user.AccountType != string(core.AccountKindGoogle) {
			a.logger.Debug("google login against password account", zap.String("email", identity.Email))
			return nil, core.NewAccountError(core.ErrKeyAccountKindMismatch, nil)
		}
		return a.mint(user, device, location)
	}

	username, err := a.generateUsername(identity.FirstName, identity.LastName)
	if err != nil {
		return nil, err
	}

	user, err = a.Register(core.RegisterParams{
		Email:     identity.Email,
		Username:  username,
		Kind:      core.AccountKindGoogle,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	})
	if err != nil {
		return nil, err
	}

	if identity.Picture != "" {
		if _, err := a.profile.SetProfileImage(user.ID, identity.Picture); err != nil {
			a.logger.Warn("failed to store provider profile image", zap.Uint("userId", user.ID), zap.Error(err))
		}
	}

	return a.mint(user, device, location)
}

func (a *AuthServiceDefault) DeleteAccount(userID uint) error {
	exists, user, err := a.user.AccountExists(userID)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	if err := a.session.LogoutAll(userID); err != nil {
		return err
	}

	if err := a.otp.RevokeForEmail(user.Email); err != nil {
		return err
	}

	if err := a.profile.DeleteByUserID(userID); err != nil {
		return err
	}

	return a.user.Delete(userID)
}

func (a *AuthServiceDefault) UpdateEmail(currentEmail string, newEmail string) (*models.User, error) {
	user, err := a.user.UpdateEmail(currentEmail, newEmail)
	if err != nil {
		return nil, err
	}

	if _, err := a.profile.UpdateProfile(user.ID, map[string]any{"email": user.Email}); err != nil {
		a.logger.Error("profile email out of sync after account update", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return user, nil
}

func (a *AuthServiceDefault) UpdateUsername(email string, username string) error {
	if err := a.user.UpdateUsername(email, username); err != nil {
		return err
	}

	profile, err := a.profile.GetByEmail(email)
	if err != nil {
		return err
	}

	if _, err := a.profile.UpdateProfile(profile.UserID, map[string]any{"username": username}); err != nil {
		a.logger.Error("profile username out of sync after account update", zap.Uint("userId", profile.UserID), zap.Error(err))
	}

	return nil
}

func (a *AuthServiceDefault) ChangePassword(username string, oldPassword string, newPassword string) error {
	return a.user.ChangePassword(username, oldPassword, newPassword)
}

func (a *AuthServiceDefault) UpdatePassword(email string, newPassword string) error {
	return a.user.UpdatePassword(email, newPassword)
}

func (a *AuthServiceDefault) mint(user *models.User, device string, location string) (*core.LoginResult, error) {
	profile, err := a.profile.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	token, sessionID, err := a.session.Mint(user, profile, device, location)
	if err != nil {
		return nil, err
	}

	return &core.LoginResult{
		AccessToken: token,
		SessionID:   sessionID,
		User:        user,
		Profile:     profile,
	}, nil
}

// generateUsername derives a free username from the provider-supplied name,
// appending a numeric suffix until one is available.
func (a *AuthServiceDefault) generateUsername(firstName string, lastName string) (string, error) {
	base := slugifyName(firstName) + "_" + slugifyName(lastName)
	base = strings.Trim(base, "_")
	if base == "" {
		base = "player"
	}

	for attempt := 0; attempt < 25; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%03d", base, rand.Intn(1000))
		}

		taken, _, err := a.user.UsernameExists(candidate)
		if err != nil {
			return "", err
		}

		if !taken {
			return candidate, nil
		}
	}

	return "", core.NewAccountError(core.ErrKeyAccountCreationFailed, fmt.Errorf("no free username for %q", base))
}

func slugifyName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
