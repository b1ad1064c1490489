package database

import (
	"flavourfit/internal/models"

	"gorm.io/gorm"
)

func MigrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserProfile{},
	)
}
