package models

import (
	"gorm.io/gorm"
)

func init() {
	registerModel(&Profile{})
}

// Profile holds the display-facing fields of an account, including the game
// stats shown on player pages. Email and Username are denormalized from the
// User row for lookup by either key.
type Profile struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex"`
	Email        string `gorm:"index"`
	Username     string `gorm:"index"`
	DisplayName  string
	FirstName    string
	LastName     string
	Bio          string
	Website      string
	ProfileImage string
	TimeZone     string
	IsAdmin      bool `gorm:"default:false"`
	Blocked      bool `gorm:"default:false"`
	Wins         uint `gorm:"default:0"`
	Losses       uint `gorm:"default:0"`
	Ties         uint `gorm:"default:0"`
	Level        uint `gorm:"default:0"`
	Points       uint `gorm:"default:0"`
}
