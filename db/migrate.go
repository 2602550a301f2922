package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
)

// Migrate applies the schema for every collection the service persists.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Earning{},
		&models.Booking{},
		&models.Review{},
		&models.Message{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Migrations applied successfully!")
	return nil
}
