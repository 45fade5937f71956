package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db"
	"go.morpionai.com/account/db/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ core.SessionService = (*SessionServiceDefault)(nil)

type SessionServiceDefault struct {
	config  config.Manager
	db      *gorm.DB
	logger  *core.Logger
	user    core.UserService
	profile core.ProfileService
}

func NewSessionService(cm config.Manager, gdb *gorm.DB, logger *core.Logger, user core.UserService, profile core.ProfileService) *SessionServiceDefault {
	return &SessionServiceDefault{
		config:  cm,
		db:      gdb,
		logger:  logger.Named("session"),
		user:    user,
		profile: profile,
	}
}

func (s *SessionServiceDefault) Create(userID uint, device string, location string) (*models.LoginSession, error) {
	session := &models.LoginSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Device:    device,
		Location:  location,
		ExpiresAt: time.Now().Add(s.config.Config().Core.Auth.SessionLifetime),
	}

	if err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(session)
	}); err != nil {
		return nil, core.NewAccountError(core.ErrKeySessionCreationFailed, err)
	}

	return session, nil
}

// Get returns the session for the given id. An expired session is removed
// and reported as not found.
func (s *SessionServiceDefault) Get(sessionID string) (*models.LoginSession, error) {
	var session models.LoginSession
	var rowsAffected int64

	err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		tx := db.Model(&models.LoginSession{}).Where(&models.LoginSession{SessionID: sessionID}).First(&session)
		rowsAffected = tx.RowsAffected
		return tx
	})

	if rowsAffected == 0 || err != nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
		}
		return nil, core.NewAccountError(core.ErrKeySessionNotFound, nil)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.Logout(session.SessionID); err != nil {
			s.logger.Error("failed to remove expired session", zap.Error(err))
		}
		return nil, core.NewAccountError(core.ErrKeySessionExpired, nil)
	}

	return &session, nil
}

func (s *SessionServiceDefault) ListForUser(userID uint) ([]models.LoginSession, error) {
	var sessions []models.LoginSession

	if err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(&models.LoginSession{}).Where(&models.LoginSession{UserID: userID}).Find(&sessions)
	}); err != nil {
		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	now := time.Now()
	live := sessions[:0]
	for _, session := range sessions {
		if now.After(session.ExpiresAt) {
			if err := s.Logout(session.SessionID); err != nil {
				s.logger.Error("failed to remove expired session", zap.Error(err))
			}
			continue
		}
		live = append(live, session)
	}

	return live, nil
}

func (s *SessionServiceDefault) Mint(user *models.User, profile *models.Profile, device string, location string) (string, string, error) {
	session, err := s.Create(user.ID, device, location)
	if err != nil {
		return "", "", err
	}

	token, err := s.signToken(user, profile)
	if err != nil {
		return "", "", err
	}

	return token, session.SessionID, nil
}

// Refresh issues a fresh access token for a live session. Account and
// profile state are re-read so the new token carries current claims.
func (s *SessionServiceDefault) Refresh(sessionID string) (string, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return "", err
	}

	exists, user, err := s.user.AccountExists(session.UserID)
	if err != nil {
		return "", err
	}

	if !exists {
		if err := s.Logout(session.SessionID); err != nil {
			s.logger.Error("failed to remove orphaned session", zap.Error(err))
		}
		return "", core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	profile, err := s.profile.GetByUserID(user.ID)
	if err != nil {
		return "", err
	}

	return s.signToken(user, profile)
}

func (s *SessionServiceDefault) Logout(sessionID string) error {
	if err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Where(&models.LoginSession{SessionID: sessionID}).Delete(&models.LoginSession{})
	}); err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

func (s *SessionServiceDefault) LogoutAll(userID uint) error {
	if err := db.RetryOnLock(s.db, func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Where(&models.LoginSession{UserID: userID}).Delete(&models.LoginSession{})
	}); err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

func (s *SessionServiceDefault) signToken(user *models.User, profile *models.Profile) (string, error) {
	cfg := s.config.Config().Core

	claims := &core.UserClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
	}

	if profile != nil {
		claims.DisplayName = profile.DisplayName
	}

	token, err := core.JWTGenerateToken(cfg.Domain, []byte(cfg.Auth.TokenSecret), claims, cfg.Auth.AccessTokenTTL)
	if err != nil {
		return "", core.NewAccountError(core.ErrKeyJWTGenerationFailed, err)
	}

	return token, nil
}
