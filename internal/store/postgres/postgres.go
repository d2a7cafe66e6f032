// Package postgres implements store.Store on a relational database through
// GORM. Production connects to Postgres; tests run the same code against an
// in-memory sqlite database.
package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db *gorm.DB
}

// Connect opens the database and brings the schema up to date. Migration
// is idempotent, so running it on every start is safe.
func Connect(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return New(db)
}

// New wraps an already-open GORM handle. Used by Connect and by tests that
// supply their own sqlite connection.
func New(db *gorm.DB) (*Store, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Todo{},
		&models.Note{},
		&models.Message{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
