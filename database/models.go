package database

import "gorm.io/gorm"

// User represents a user account in the database.
// The password hash is opaque to everything except the auth package.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	Settings     *UserSettings
}

// UserSettings holds the per-user dashboard preferences.
// Lifecycle is tied to the owning user row.
type UserSettings struct {
	gorm.Model
	UserID            uint `gorm:"uniqueIndex;not null"`
	MaxNumberOfLinks  int
	LinkInNewTab      bool
	UseBgImage        bool
	BgImage           string
	Columns           int
	CardStyle         string
	EnableNeonShadows bool
	CardPosition      string
}

// DefaultUserSettings returns the settings a freshly registered user starts with.
func DefaultUserSettings(userID uint) *UserSettings {
	return &UserSettings{
		UserID:           userID,
		MaxNumberOfLinks: 50,
		LinkInNewTab:     true,
		Columns:          3,
		CardStyle:        "default",
		CardPosition:     "top",
	}
}
