package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/mealmind/backend/internal/models"
)

// RunMigrations creates or updates every table the service uses
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DropTables removes every table RunMigrations creates, dependents first.
func DropTables(db *gorm.DB) error {
	tables := models.All()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", tables[i], err)
		}
	}
	return nil
}
