package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound covers both "no such row" and "row owned by someone else" so
// that callers cannot distinguish another user's note from a missing one.
var ErrNotFound = errors.New("not found")

// ValidationError reports the first failing field of an input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Store wraps the database handle for all user and note operations.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
