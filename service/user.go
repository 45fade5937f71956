package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db"
	"go.morpionai.com/account/db/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ core.UserService = (*UserServiceDefault)(nil)

type UserServiceDefault struct {
	config config.Manager
	db     *gorm.DB
	logger *core.Logger
}

func NewUserService(cm config.Manager, gdb *gorm.DB, logger *core.Logger) *UserServiceDefault {
	return &UserServiceDefault{
		config: cm,
		db:     gdb,
		logger: logger.Named("user"),
	}
}

func (u *UserServiceDefault) EmailExists(email string) (bool, *models.User, error) {
	return u.exists(&models.User{Email: email})
}

func (u *UserServiceDefault) UsernameExists(username string) (bool, *models.User, error) {
	return u.exists(&models.User{Username: username})
}

func (u *UserServiceDefault) AccountExists(id uint) (bool, *models.User, error) {
	var user models.User
	user.ID = id
	return u.exists(&user)
}

func (u *UserServiceDefault) exists(query *models.User) (bool, *models.User, error) {
	var user models.User
	var rowsAffected int64

	err := db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
		tx := db.Model(&models.User{}).Where(query).First(&user)
		rowsAffected = tx.RowsAffected
		return tx
	})

	if rowsAffected == 0 || err != nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
		}
		return false, nil, nil
	}

	return true, &user, nil
}

func (u *UserServiceDefault) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", core.NewAccountError(core.ErrKeyHashingFailed, err)
	}
	return string(bytes), nil
}

func (u *UserServiceDefault) CreateAccount(email string, username string, password string, kind core.AccountKind, firstName string, lastName string) (*models.User, error) {
	user := models.User{
		Email:       email,
		Username:    username,
		AccountType: string(kind),
		FirstName:   firstName,
		LastName:    lastName,
	}

	if kind == core.AccountKindEmail {
		passwordHash, err := u.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	if err := db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&user)
	}); err != nil {
		if errors.Is(err, models.ErrEmailInvalid) {
			return nil, core.NewAccountError(core.ErrKeyEmailInvalid, err)
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, core.NewAccountError(core.ErrKeyEmailAlreadyExists, nil)
		}

		if err, ok := err.(*mysql.MySQLError); ok {
			if err.Number == 1062 {
				return nil, core.NewAccountError(core.ErrKeyEmailAlreadyExists, nil)
			}
		}

		return nil, core.NewAccountError(core.ErrKeyAccountCreationFailed, err)
	}

	return &user, nil
}

func (u *UserServiceDefault) ValidLoginByEmail(email string, password string) (bool, *models.User, error) {
	exists, user, err := u.EmailExists(email)
	if err != nil {
		return false, nil, err
	}

	if !exists {
		return false, nil, core.NewAccountError(core.ErrKeyInvalidLogin, nil)
	}

	if !u.validPassword(user, password) {
		return false, nil, nil
	}

	return true, user, nil
}

func (u *UserServiceDefault) validPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))

	return err == nil
}

func (u *UserServiceDefault) UpdateAccountInfo(userID uint, info map[string]any) error {
	var user models.User
	user.ID = userID

	if err := db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(&user).Updates(info)
	}); err != nil {
		return core.NewAccountError(core.ErrKeyAccountUpdateFailed, err)
	}

	return nil
}

func (u *UserServiceDefault) UpdateEmail(currentEmail string, newEmail string) (*models.User, error) {
	if newEmail == currentEmail {
		return nil, core.NewAccountError(core.ErrKeyUpdatingSameEmail, nil)
	}

	taken, _, err := u.EmailExists(newEmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, core.NewAccountError(core.ErrKeyEmailAlreadyExists, nil)
	}

	exists, user, err := u.EmailExists(currentEmail)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	if err := u.UpdateAccountInfo(user.ID, map[string]any{"email": newEmail}); err != nil {
		return nil, err
	}

	user.Email = newEmail

	return user, nil
}

func (u *UserServiceDefault) UpdateUsername(email string, username string) error {
	taken, _, err := u.UsernameExists(username)
	if err != nil {
		return err
	}
	if taken {
		return core.NewAccountError(core.ErrKeyUsernameAlreadyExists, nil)
	}

	exists, user, err := u.EmailExists(email)
	if err != nil {
		return err
	}
	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	return u.UpdateAccountInfo(user.ID, map[string]any{"username": username})
}

func (u *UserServiceDefault) ChangePassword(username string, oldPassword string, newPassword string) error {
	exists, user, err := u.UsernameExists(username)
	if err != nil {
		return err
	}
	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	if !u.validPassword(user, oldPassword) {
		return core.NewAccountError(core.ErrKeyInvalidPassword, nil)
	}

	passwordHash, err := u.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.UpdateAccountInfo(user.ID, map[string]any{"password_hash": passwordHash})
}

func (u *UserServiceDefault) UpdatePassword(email string, newPassword string) error {
	exists, user, err := u.EmailExists(email)
	if err != nil {
		return err
	}
	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	passwordHash, err := u.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.UpdateAccountInfo(user.ID, map[string]any{"password_hash": passwordHash})
}

func (u *UserServiceDefault) Delete(userID uint) error {
	if err := db.RetryOnLock(u.db, func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Delete(&models.User{}, userID)
	}); err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}
