package database

import "context"

// UserStore defines the persistence operations the auth service consumes.
type UserStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	UpdateIsAdmin(ctx context.Context, id uint, isAdmin bool) error
	Delete(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	LoadSettings(ctx context.Context, userID uint) (*UserSettings, error)
}
