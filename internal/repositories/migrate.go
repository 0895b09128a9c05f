package repositories

import (
	"gorm.io/gorm"

	"aurum/internal/models"
)

// AutoMigrate applies the schema for all persisted entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}
