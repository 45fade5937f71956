package models

import (
	"time"

	"gorm.io/gorm"
)

func init() {
	registerModel(&OTPToken{})
}

// OTPToken is an ephemeral email-verification artifact. A code is valid only
// together with its TokenID, and only until ExpiresAt; rows are deleted on
// successful validation.
type OTPToken struct {
	gorm.Model
	TokenID   string `gorm:"uniqueIndex"`
	Email     string `gorm:"index"`
	Code      string
	ExpiresAt time.Time
}
