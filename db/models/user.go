package models

import (
	"errors"

	emailverifier "github.com/AfterShip/email-verifier"
	"gorm.io/gorm"
)

func init() {
	registerModel(&User{})
}

// User is the identity record. AccountType is the authentication method the
// account was created with ("email" or "google") and never changes;
// PasswordHash is set only for email-kind accounts.
type User struct {
	gorm.Model
	FirstName    string
	LastName     string
	Email        string `gorm:"unique"`
	Username     string `gorm:"unique"`
	PasswordHash string
	AccountType  string
	Sessions     []LoginSession
}

var ErrEmailInvalid = errors.New("email is invalid")

func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Syntax-only check; no network lookups on the insert path.
	if !getEmailVerifier().ParseAddress(u.Email).Valid {
		return ErrEmailInvalid
	}
	return nil
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	var email string
	var changed bool

	switch dest := tx.Statement.Dest.(type) {
	case *User:
		email = dest.Email
		changed = tx.Statement.Changed("Email")
	case map[string]interface{}:
		if e, ok := dest["email"]; ok {
			if emailStr, ok := e.(string); ok {
				email = emailStr
				changed = true
			}
		}
	default:
		return errors.New("unsupported destination type")
	}

	if changed && email != "" {
		return validateEmailSyntax(email)
	}

	return nil
}

func validateEmailSyntax(email string) error {
	verify, err := getEmailVerifier().Verify(email)
	if err != nil {
		return err
	}
	if !verify.Syntax.Valid {
		return ErrEmailInvalid
	}
	return nil
}

func getEmailVerifier() *emailverifier.Verifier {
	verifier := emailverifier.NewVerifier()

	verifier.DisableSMTPCheck()
	verifier.DisableGravatarCheck()
	verifier.DisableDomainSuggest()
	verifier.DisableAutoUpdateDisposable()

	return verifier
}
