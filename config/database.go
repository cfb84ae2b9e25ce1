package config

import (
	"github.com/notelab/notelab-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the postgres connection and migrates the schema.
// The returned handle is constructed once at process start and passed to
// every component that needs it.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Note{}); err != nil {
		return nil, err
	}

	return db, nil
}
