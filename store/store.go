package store

import (
	"github.com/emilearthur/todo/models"

	"gorm.io/gorm"
)

// Store owns all database access. Every multi-statement state change runs
// inside a single transaction; nothing outside this package touches the
// schema.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the schema for every model.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Todo{},
		&models.Offer{},
		&models.Evaluation{},
		&models.Comment{},
	)
}

// IsOwner reports whether user owns the todo. Ownership comparisons always go
// through the id column; expanded owner records never participate.
func IsOwner(user *models.User, todo *models.Todo) bool {
	return user != nil && todo != nil && todo.OwnerID == user.ID
}
