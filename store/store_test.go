package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/notelab/notelab-api/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}))

	return New(db)
}

func newTestUser(t *testing.T, s *Store, authID string) *models.User {
	t.Helper()

	user, err := s.ResolveOrCreateUser(authID, authID+"@example.com", "Test User")
	require.NoError(t, err)
	return user
}
