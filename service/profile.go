package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db"
	"go.morpionai.com/account/db/models"
	"gorm.io/gorm"
)

var _ core.ProfileService = (*ProfileServiceDefault)(nil)

var (
	displayNameAdjectives = []string{
		"Swift", "Mighty", "Shadow", "Golden", "Silver", "Crimson", "Azure", "Emerald",
		"Thunder", "Lightning", "Frost", "Blaze", "Storm", "Void", "Cosmic", "Lunar",
		"Solar", "Stellar", "Phoenix", "Dragon", "Wolf", "Eagle", "Lion", "Tiger",
		"Viper", "Cobra", "Falcon", "Hawk", "Raven", "Ghost", "Phantom", "Knight",
		"Warrior", "Mage", "Archer", "Rogue", "Paladin", "Wizard", "Ninja", "Samurai",
		"Viking", "Gladiator", "Champion", "Hero", "Legend", "Epic", "Divine",
	}

	displayNameNouns = []string{
		"Striker", "Slayer", "Hunter", "Seeker", "Runner", "Fighter", "Guardian",
		"Protector", "Defender", "Avenger", "Justice", "Honor", "Glory", "Victory",
		"Triumph", "Conquest", "Dominion", "Empire", "Kingdom", "Realm", "Galaxy",
		"Star", "Planet", "Moon", "Comet", "Meteor", "Nebula", "Portal", "Gateway",
		"Path", "Trail", "Journey", "Quest", "Adventure", "Voyage",
	}

	displayNameSuffixes = []string{
		"X", "Z", "Alpha", "Beta", "Omega", "Prime", "Ultra", "Mega", "Super",
		"Neo", "Cyber", "Quantum", "Atomic", "Plasma", "Sonic",
	}
)

type ProfileServiceDefault struct {
	config config.Manager
	db     *gorm.DB
	logger *core.Logger
}

func NewProfileService(cm config.Manager, gdb *gorm.DB, logger *core.Logger) *ProfileServiceDefault {
	return &ProfileServiceDefault{
		config: cm,
		db:     gdb,
		logger: logger.Named("profile"),
	}
}

func (p *ProfileServiceDefault) GetByUserID(userID uint) (*models.Profile, error) {
	return p.get(&models.Profile{UserID: userID})
}

func (p *ProfileServiceDefault) GetByEmail(email string) (*models.Profile, error) {
	return p.get(&models.Profile{Email: email})
}

func (p *ProfileServiceDefault) GetByUsername(username string) (*models.Profile, error) {
	return p.get(&models.Profile{Username: username})
}

func (p *ProfileServiceDefault) get(query *models.Profile) (*models.Profile, error) {
	var profile models.Profile
	var rowsAffected int64

	err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		tx := db.Model(&models.Profile{}).Where(query).First(&profile)
		rowsAffected = tx.RowsAffected
		return tx
	})

	if rowsAffected == 0 || err != nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
		}
		return nil, core.NewAccountError(core.ErrKeyProfileNotFound, nil)
	}

	return &profile, nil
}

func (p *ProfileServiceDefault) CreateProfile(profile *models.Profile) error {
	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(profile)
	}); err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}

func (p *ProfileServiceDefault) UpdateProfile(userID uint, updates map[string]any) (*models.Profile, error) {
	profile, err := p.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(profile).Updates(updates)
	}); err != nil {
		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return p.GetByUserID(userID)
}

func (p *ProfileServiceDefault) UpdateInfo(userID uint, firstName string, lastName string, displayName string, bio string) (*models.Profile, error) {
	if firstName == "" || lastName == "" {
		return nil, core.NewAccountError(core.ErrKeyMissingRequiredField, nil)
	}

	return p.UpdateProfile(userID, map[string]any{
		"first_name":   firstName,
		"last_name":    lastName,
		"display_name": displayName,
		"bio":          bio,
	})
}

func (p *ProfileServiceDefault) SetProfileImage(userID uint, url string) (*models.Profile, error) {
	return p.UpdateProfile(userID, map[string]any{"profile_image": url})
}

func (p *ProfileServiceDefault) RemoveProfileImage(userID uint) (*models.Profile, error) {
	return p.UpdateProfile(userID, map[string]any{"profile_image": ""})
}

func (p *ProfileServiceDefault) Search(text string, limit int) ([]models.Profile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + escapeLike(text) + "%"

	var profiles []models.Profile
	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Model(&models.Profile{}).
			Where(`username LIKE ? ESCAPE '\' OR display_name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`, pattern, pattern, pattern).
			Limit(limit).
			Find(&profiles)
	}); err != nil {
		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return profiles, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func (p *ProfileServiceDefault) GenerateRandomDisplayName() string {
	adjective := displayNameAdjectives[rand.Intn(len(displayNameAdjectives))]
	noun := displayNameNouns[rand.Intn(len(displayNameNouns))]
	suffix := displayNameSuffixes[rand.Intn(len(displayNameSuffixes))]
	num := rand.Intn(999) + 1

	patterns := []string{
		adjective + noun,
		fmt.Sprintf("%s%s%d", adjective, noun, num),
		adjective + suffix,
		suffix + adjective,
		adjective + "The" + noun,
		adjective + noun + suffix,
		fmt.Sprintf("%s%d%s", adjective, num, noun),
		suffix + adjective + noun,
	}

	return patterns[rand.Intn(len(patterns))]
}

func (p *ProfileServiceDefault) AssignRandomDisplayName(userID uint) (string, error) {
	profile, err := p.GetByUserID(userID)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(profile.DisplayName) != "" {
		return profile.DisplayName, nil
	}

	displayName := p.GenerateRandomDisplayName()
	if _, err := p.UpdateProfile(userID, map[string]any{"display_name": displayName}); err != nil {
		return "", err
	}

	return displayName, nil
}

func (p *ProfileServiceDefault) DeleteByUserID(userID uint) error {
	if err := db.RetryOnLock(p.db, func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Where(&models.Profile{UserID: userID}).Delete(&models.Profile{})
	}); err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}
