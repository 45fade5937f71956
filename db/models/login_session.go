package models

import (
	"time"

	"gorm.io/gorm"
)

func init() {
	registerModel(&LoginSession{})
}

// LoginSession anchors one logical login. SessionID is the opaque handle the
// client presents to refresh its access token; rows past ExpiresAt are
// treated as absent.
type LoginSession struct {
	gorm.Model
	SessionID string `gorm:"uniqueIndex"`
	UserID    uint   `gorm:"index"`
	Device    string
	Location  string
	ExpiresAt time.Time
}
