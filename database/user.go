package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user row does not exist.
var ErrUserNotFound = errors.New("user not found")

// ExistsByUsername reports whether a user with the given username exists.
// Usernames are case-sensitive.
func (d *DB) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Error("failed to check username", "error", err)
		return false, err
	}
	return count > 0, nil
}

// GetByID fetches a user by primary key.
func (d *DB) GetByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := d.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by id", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetAll returns every user with id, username and admin flag only.
func (d *DB) GetAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := d.db.WithContext(ctx).Select("id", "username", "is_admin").Order("id").Find(&users).Error; err != nil {
		log.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// Create inserts a new user together with their default settings row.
func (d *DB) Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error) {
	user := User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(DefaultUserSettings(user.ID)).Error
	})
	if err != nil {
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored password hash.
func (d *DB) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	res := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		log.Error("failed to update password hash", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateIsAdmin sets the admin flag on a user.
func (d *DB) UpdateIsAdmin(ctx context.Context, id uint, isAdmin bool) error {
	res := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("is_admin", isAdmin)
	if res.Error != nil {
		log.Error("failed to update admin flag", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user and their settings row.
func (d *DB) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("id = ?", id).Delete(&User{})
		if res.Error != nil {
			log.Error("failed to delete user", "error", res.Error)
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Unscoped().Where("user_id = ?", id).Delete(&UserSettings{}).Error
	})
}

// CountAll returns the number of user rows.
func (d *DB) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return 0, err
	}
	return count, nil
}

// CountAdmins returns the number of users with the admin flag set.
func (d *DB) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		log.Error("failed to count admins", "error", err)
		return 0, err
	}
	return count, nil
}

// LoadSettings fetches the settings row for a user, or nil when absent.
func (d *DB) LoadSettings(ctx context.Context, userID uint) (*UserSettings, error) {
	var settings UserSettings
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to load user settings", "error", err)
		return nil, err
	}
	return &settings, nil
}
