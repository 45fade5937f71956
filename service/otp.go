package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db"
	"go.morpionai.com/account/db/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ core.OTPService = (*OTPServiceDefault)(nil)

type OTPServiceDefault struct {
	config config.Manager
	db     *gorm.DB
	logger *core.Logger
	user   core.UserService
	mailer core.MailerService
}

func NewOTPService(cm config.Manager, gdb *gorm.DB, logger *core.Logger, user core.UserService, mailer core.MailerService) *OTPServiceDefault {
	return &OTPServiceDefault{
		config: cm,
		db:     gdb,
		logger: logger.Named("otp"),
		user:   user,
		mailer: mailer,
	}
}

func (o *OTPServiceDefault) Generate(ctx context.Context, email string) (string, error) {
	code, err := generateOTPCode()
	if err != nil {
		return "", core.NewAccountError(core.ErrKeyOTPGenerationFailed, err)
	}

	ttl := o.config.Config().Core.Auth.OTPTTL

	token := &models.OTPToken{
		TokenID:   uuid.NewString(),
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := db.RetryOnLock(o.db, func(db *gorm.DB) *gorm.DB {
		return db.WithContext(ctx).Create(token)
	}); err != nil {
		return "", core.NewAccountError(core.ErrKeyOTPGenerationFailed, err)
	}

	err = o.mailer.TemplateSend(core.MAILER_TPL_OTP_CODE, core.MailerTemplateData{}, core.MailerTemplateData{
		"Code":      code,
		"ExpiresIn": fmt.Sprintf("%d minutes", int(ttl.Minutes())),
	}, email)
	if err != nil {
		o.logger.Error("failed to send verification code", zap.String("email", email), zap.Error(err))
		return "", core.NewAccountError(core.ErrKeyOTPSendFailed, err)
	}

	return token.TokenID, nil
}

func (o *OTPServiceDefault) Validate(tokenID string, code string) (bool, error) {
	var token models.OTPToken
	var rowsAffected int64

	err := db.RetryOnLock(o.db, func(db *gorm.DB) *gorm.DB {
		tx := db.Model(&models.OTPToken{}).Where(&models.OTPToken{TokenID: tokenID}).First(&token)
		rowsAffected = tx.RowsAffected
		return tx
	})

	if rowsAffected == 0 || err != nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
		}
		return false, nil
	}

	if time.Now().After(token.ExpiresAt) {
		o.consume(&token)
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(token.Code), []byte(code)) != 1 {
		return false, nil
	}

	o.consume(&token)

	return true, nil
}

func (o *OTPServiceDefault) RequestAccount(ctx context.Context, email string) (string, error) {
	exists, _, err := o.user.EmailExists(email)
	if err != nil {
		return "", err
	}

	if exists {
		return "", core.NewAccountError(core.ErrKeyEmailAlreadyExists, nil)
	}

	return o.Generate(ctx, email)
}

func (o *OTPServiceDefault) RevokeForEmail(email string) error {
	if err := db.RetryOnLock(o.db, func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Where(&models.OTPToken{Email: email}).Delete(&models.OTPToken{})
	}); err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

// consume hard-deletes an OTP record so a code can never match twice.
func (o *OTPServiceDefault) consume(token *models.OTPToken) {
	if err := db.RetryOnLock(o.db, func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Delete(token)
	}); err != nil {
		o.logger.Error("failed to consume OTP token", zap.String("tokenId", token.TokenID), zap.Error(err))
	}
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
