package database

import (
	"fmt"
	"path"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DB wraps the gorm.DB instance.
type DB struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path.Join(dbpath, "neonlink.db")), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	d := &DB{db: db}
	if err := d.Migrate(); err != nil {
		return nil, err
	}

	return d, nil
}

// NewInMemory creates a throwaway in-memory database, used by tests.
// Each call returns an isolated database.
func NewInMemory() (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	d := &DB{db: db}
	if err := d.Migrate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Migrate applies the schema migrations.
func (d *DB) Migrate() error {
	if err := d.db.AutoMigrate(
		&User{},
		&UserSettings{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
