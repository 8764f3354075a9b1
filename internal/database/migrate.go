package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/internal/model"
)

// RunMigrations creates the recipes table if it does not exist and adds any
// missing columns. Existing columns are never altered or dropped.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Using GORM auto-migration for %s", db.Dialector.Name())
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes table: %w", err)
	}
	return nil
}
