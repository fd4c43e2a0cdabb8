package repositories

import (
	"errors"

	"tweet-server/db"

	"gorm.io/gorm"
)

// DatabaseStorage implements Storage on top of gorm.
type DatabaseStorage struct {
	db db.Database
}

func NewDatabaseStorage(database db.Database) *DatabaseStorage {
	return &DatabaseStorage{db: database}
}

var _ Storage = (*DatabaseStorage)(nil)

// notFound folds gorm's record-not-found into the "absent" convention.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
